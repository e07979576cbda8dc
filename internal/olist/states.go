package olist

// BrazilianStates are the 26 states and the Federal District, as
// (state_code, state_name, region).
var BrazilianStates = [][]string{
	{"AC", "Acre", "North"},
	{"AL", "Alagoas", "Northeast"},
	{"AP", "Amapá", "North"},
	{"AM", "Amazonas", "North"},
	{"BA", "Bahia", "Northeast"},
	{"CE", "Ceará", "Northeast"},
	{"DF", "Distrito Federal", "Central-West"},
	{"ES", "Espírito Santo", "Southeast"},
	{"GO", "Goiás", "Central-West"},
	{"MA", "Maranhão", "Northeast"},
	{"MT", "Mato Grosso", "Central-West"},
	{"MS", "Mato Grosso do Sul", "Central-West"},
	{"MG", "Minas Gerais", "Southeast"},
	{"PA", "Pará", "North"},
	{"PB", "Paraíba", "Northeast"},
	{"PR", "Paraná", "South"},
	{"PE", "Pernambuco", "Northeast"},
	{"PI", "Piauí", "Northeast"},
	{"RJ", "Rio de Janeiro", "Southeast"},
	{"RN", "Rio Grande do Norte", "Northeast"},
	{"RS", "Rio Grande do Sul", "South"},
	{"RO", "Rondônia", "North"},
	{"RR", "Roraima", "North"},
	{"SC", "Santa Catarina", "South"},
	{"SP", "São Paulo", "Southeast"},
	{"SE", "Sergipe", "Northeast"},
	{"TO", "Tocantins", "North"},
}

// StateCodes returns the two-letter codes of BrazilianStates.
func StateCodes() []string {
	codes := make([]string, len(BrazilianStates))
	for i, s := range BrazilianStates {
		codes[i] = s[0]
	}
	return codes
}
