package domain

// Dictionaries are the code to display-name tables served by the dictionary source.
type Dictionaries struct {
	Airlines   map[string]string `json:"airlines"`
	Airports   map[string]string `json:"airports"`
	Cities     map[string]string `json:"cities"`
	TTLSeconds int               `json:"ttlSeconds"`
}

// NameResolver resolves upper-case codes to display names.
// The bool result is false when the code is unknown.
type NameResolver interface {
	CityName(code string) (string, bool)
	AirportName(code string) (string, bool)
	AirlineName(code string) (string, bool)
}

// NopResolver resolves nothing; names fall back to raw values and codes.
type NopResolver struct{}

func (NopResolver) CityName(string) (string, bool)    { return "", false }
func (NopResolver) AirportName(string) (string, bool) { return "", false }
func (NopResolver) AirlineName(string) (string, bool) { return "", false }
