package disney

import "github.com/amaumene/dsnparr/internal/models"

// fallbackRegions are used until the remote site configuration has been
// fetched, or when it cannot be
var fallbackRegions = map[models.SiteVariant][]string{
	models.VariantDisney: {
		"AD", "AE", "AG", "AI", "AL", "AR", "AT", "AU", "AW", "BA", "BB", "BE", "BG", "BH", "BM",
		"BO", "BQ", "BR", "BS", "BZ", "CA", "CH", "CL", "CO", "CR", "CW", "CY", "CZ", "DE", "DK",
		"DM", "DO", "DZ", "EC", "EE", "EG", "ES", "FI", "FK", "FO", "FR", "GB", "GD", "GF", "GG",
		"GI", "GL", "GP", "GR", "GT", "GY", "HN", "HR", "HT", "HU", "IE", "IL", "IM", "IQ", "IS",
		"IT", "JE", "JM", "JO", "JP", "KN", "KR", "KW", "KY", "LB", "LC", "LI", "LT", "LU", "LV",
		"LY", "MA", "MC", "ME", "MF", "MK", "MQ", "MS", "MT", "MX", "NC", "NI", "NL", "NO", "NZ",
		"OM", "PA", "PE", "PF", "PL", "PM", "PS", "PT", "PY", "QA", "RE", "RO", "RS", "SA", "SE",
		"SG", "SI", "SK", "SM", "SR", "SV", "SX", "TC", "TN", "TR", "TT", "TW", "US", "UY", "VA",
		"VC", "VE", "VG", "WF", "YE", "YT", "ZA",
	},
	models.VariantStar: {
		"AR", "BO", "BR", "CL", "CO", "CR", "DO", "EC", "GT", "HN", "MX", "NI", "PA", "PE", "PY",
		"SV", "UY", "VE",
	},
}

// FallbackRegions returns a copy of the compiled-in region list of variant
func FallbackRegions(variant models.SiteVariant) []string {
	return append([]string(nil), fallbackRegions[variant]...)
}
