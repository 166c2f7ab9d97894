package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxVenueNameLength        = 64
	MaxVenueDescriptionLength = 255
	MaxCityLength             = 64
	MaxResourceNameLength     = 255
	MaxFullNameLength         = 255
	MaxCommentLength          = 1000
	TaxIDLength               = 11

	MinRating = 1
	MaxRating = 5

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// TopListLimit размер топов в статистике менеджера
	TopListLimit = 5
)

// Regions допустимые коды регионов (UF)
var Regions = map[string]string{
	"AC": "Acre",
	"AL": "Alagoas",
	"AP": "Amapá",
	"AM": "Amazonas",
	"BA": "Bahia",
	"CE": "Ceará",
	"DF": "Distrito Federal",
	"ES": "Espírito Santo",
	"GO": "Goiás",
	"MA": "Maranhão",
	"MT": "Mato Grosso",
	"MS": "Mato Grosso do Sul",
	"MG": "Minas Gerais",
	"PA": "Pará",
	"PB": "Paraíba",
	"PR": "Paraná",
	"PE": "Pernambuco",
	"PI": "Piauí",
	"RJ": "Rio de Janeiro",
	"RN": "Rio Grande do Norte",
	"RS": "Rio Grande do Sul",
	"RO": "Rondônia",
	"RR": "Roraima",
	"SC": "Santa Catarina",
	"SP": "São Paulo",
	"SE": "Sergipe",
	"TO": "Tocantins",
}

// IsValidRegion проверяет код региона
func IsValidRegion(code string) bool {
	_, ok := Regions[code]
	return ok
}
