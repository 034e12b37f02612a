package dto

// AppConfigResData exposes the editable settings. API keys are reported as
// presence flags only, never echoed back.
type AppConfigResData struct {
	TranscribeProvider string `json:"transcribeProvider"`
	AssemblyaiKeySet   bool   `json:"assemblyaiKeySet"`
	AssemblyaiBaseUrl  string `json:"assemblyaiBaseUrl"`
	LlmKeySet          bool   `json:"llmKeySet"`
	LlmBaseUrl         string `json:"llmBaseUrl"`
	LlmModel           string `json:"llmModel"`
	StorageDriver      string `json:"storageDriver"`
	ExportVideoCodec   string `json:"exportVideoCodec"`
}

type UpdateAppConfigReq struct {
	AssemblyaiApiKey *string `json:"assemblyaiApiKey"`
	LlmApiKey        *string `json:"llmApiKey"`
	LlmBaseUrl       *string `json:"llmBaseUrl"`
	LlmModel         *string `json:"llmModel"`
	ExportVideoCodec *string `json:"exportVideoCodec"`
}
