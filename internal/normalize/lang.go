package normalize

// iso639_2to1 maps the three-letter language codes seen in harvested records
// to their two-letter equivalents. Bibliographic (B) variants included where
// they differ.
var iso639_2to1 = map[string]string{
	"eng": "en",
	"deu": "de", "ger": "de",
	"fra": "fr", "fre": "fr",
	"nld": "nl", "dut": "nl",
	"spa": "es",
	"ita": "it",
	"por": "pt",
	"rus": "ru",
	"zho": "zh", "chi": "zh",
	"jpn": "ja",
	"lat": "la",
	"swe": "sv",
	"dan": "da",
	"nor": "no",
	"pol": "pl",
	"ces": "cs", "cze": "cs",
	"ell": "el", "gre": "el",
	"fin": "fi",
	"hun": "hu",
	"tur": "tr",
	"ara": "ar",
}

// NormalizeLang reduces an ISO 639-2 language tag to ISO 639-1. Two-letter
// tags and unknown values pass through unchanged.
func NormalizeLang(lang string) string {
	if two, ok := iso639_2to1[lang]; ok {
		return two
	}
	return lang
}
