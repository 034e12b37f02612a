package storage

// Resolved encoder binary paths, set once at startup by internal/deps.
var (
	FfmpegPath  = "ffmpeg"
	FfprobePath = "ffprobe"
)
