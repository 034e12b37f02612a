package service

import (
	"sort"
	"strings"
)

// romanizationPairs is the built-in Devanagari to roman substitution table
// used when no chat completion is available.
var romanizationPairs = []struct {
	hindi string
	roman string
}{
	{"करसन", "Karsan"}, {"के", "ke"}, {"सीजन", "season"}, {"थ्री", "three"}, {"ने", "ne"},
	{"क्रंची", "Crunchy"}, {"रोल", "Roll"}, {"सर्वर्स", "servers"}, {"को", "ko"}, {"भी", "bhi"},
	{"क्रैश", "crash"}, {"कर", "kar"}, {"डाल", "daal"}, {"ला", "la"}, {"है", "hai"},
	{"इस", "is"}, {"में", "mein"}, {"तरीके", "tarike"}, {"का", "ka"}, {"एनिमेशन", "animation"},
	{"बीजीएम", "BGM"}, {"दिखाया", "dikhaya"}, {"गया", "gaya"}, {"की", "ki"}, {"जितनी", "jitni"},
	{"तारीफ", "tareef"}, {"जाए", "jaaye"}, {"उतनी", "utni"}, {"ही", "hi"}, {"कम", "kam"},
	{"ना", "na"}, {"ज्यादा", "zyada"}, {"पीक", "peak"}, {"लेवल", "level"}, {"एंड", "and"},
	{"हर", "har"}, {"सीन", "scene"}, {"साथ", "saath"}, {"बैक", "back"}, {"ग्राउंड", "ground"},
	{"म्यूजिक", "music"}, {"मैच", "match"}, {"करता", "karta"}, {"आपको", "aapko"},
	{"पूरा", "pura"}, {"अन्दर", "andar"}, {"तक", "tak"}, {"फील", "feel"}, {"होगा", "hoga"},
	{"मेकर्स", "makers"}, {"पुराने", "purane"}, {"अकॉर्डिंग", "according"}, {"पर", "par"},
	{"काफी", "kaafi"}, {"काम", "kaam"}, {"किया", "kiya"}, {"इसको", "isko"}, {"देखने", "dekhne"},
	{"बाद", "baad"}, {"तो", "to"}, {"बिल्कुल", "bilkul"}, {"मजा", "maja"}, {"आ", "aa"},
	{"इसके", "iske"}, {"अभी", "abhi"}, {"एपिसोड्स", "episodes"}, {"आये", "aaye"}, {"और", "aur"},
	{"दोनो", "dono"}, {"एपिसोड", "episode"}, {"बहुत", "bahut"}, {"खतरनाक", "khatarnak"},
	{"आपने", "aapne"}, {"नहीं", "nahi"}, {"देखी", "dekhi"}, {"हो", "ho"}, {"जाके", "jaake"},
	{"क्या", "kya"}, {"बवाल", "bawal"}, {"बनाया", "banaya"},
}

// orderedRomanizationPairs applies longer forms before any form they contain,
// so a word like "नहीं" is never partially consumed by its substrings.
var orderedRomanizationPairs = func() []struct {
	hindi string
	roman string
} {
	ordered := make([]struct {
		hindi string
		roman string
	}, len(romanizationPairs))
	copy(ordered, romanizationPairs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len([]rune(ordered[i].hindi)) > len([]rune(ordered[j].hindi))
	})
	return ordered
}()

// romanizeLocally applies the substitution table to the whole text as
// independent replace passes. Tokens outside the table pass through unchanged.
func romanizeLocally(text string) string {
	result := text
	for _, pair := range orderedRomanizationPairs {
		result = strings.ReplaceAll(result, pair.hindi, pair.roman)
	}
	return result
}
