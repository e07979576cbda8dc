package datagen

// Place is a city with its state and approximate coordinates.
type Place struct {
	City  string
	State string
	Lat   float64
	Lng   float64
}

// capitals are the state capitals, lower-cased and unaccented as in the
// Olist geolocation file.
var capitals = []Place{
	{"rio branco", "AC", -9.97, -67.81},
	{"maceio", "AL", -9.67, -35.74},
	{"macapa", "AP", 0.03, -51.07},
	{"manaus", "AM", -3.12, -60.02},
	{"salvador", "BA", -12.97, -38.50},
	{"fortaleza", "CE", -3.73, -38.53},
	{"brasilia", "DF", -15.79, -47.88},
	{"vitoria", "ES", -20.32, -40.34},
	{"goiania", "GO", -16.68, -49.25},
	{"sao luis", "MA", -2.53, -44.30},
	{"cuiaba", "MT", -15.60, -56.10},
	{"campo grande", "MS", -20.47, -54.62},
	{"belo horizonte", "MG", -19.92, -43.94},
	{"belem", "PA", -1.46, -48.50},
	{"joao pessoa", "PB", -7.12, -34.86},
	{"curitiba", "PR", -25.43, -49.27},
	{"recife", "PE", -8.05, -34.88},
	{"teresina", "PI", -5.09, -42.80},
	{"rio de janeiro", "RJ", -22.91, -43.17},
	{"natal", "RN", -5.79, -35.21},
	{"porto alegre", "RS", -30.03, -51.23},
	{"porto velho", "RO", -8.76, -63.90},
	{"boa vista", "RR", 2.82, -60.67},
	{"florianopolis", "SC", -27.60, -48.55},
	{"sao paulo", "SP", -23.55, -46.63},
	{"aracaju", "SE", -10.91, -37.07},
	{"palmas", "TO", -10.18, -48.33},
}

// capitalWeights skews generation towards the south-east, as in the real
// dataset where SP alone holds about 40% of customers.
var capitalWeights = []int{
	1, 1, 1, 2, 4, 2, 3, 2, 2, 1, 1, 1, 12, 1, 1, 5,
	2, 1, 13, 1, 6, 1, 1, 4, 40, 1, 1,
}

// category pairs a Portuguese category name with its English translation.
type category struct {
	Portuguese string
	English    string
}

var categories = []category{
	{"beleza_saude", "health_beauty"},
	{"informatica_acessorios", "computers_accessories"},
	{"cama_mesa_banho", "bed_bath_table"},
	{"moveis_decoracao", "furniture_decor"},
	{"esporte_lazer", "sports_leisure"},
	{"utilidades_domesticas", "housewares"},
	{"relogios_presentes", "watches_gifts"},
	{"telefonia", "telephony"},
	{"automotivo", "auto"},
	{"brinquedos", "toys"},
	{"cool_stuff", "cool_stuff"},
	{"ferramentas_jardim", "garden_tools"},
	{"perfumaria", "perfumery"},
	{"bebes", "baby"},
	{"eletronicos", "electronics"},
	{"papelaria", "stationery"},
	{"fashion_bolsas_e_acessorios", "fashion_bags_accessories"},
	{"pet_shop", "pet_shop"},
	{"livros_interesse_geral", "books_general_interest"},
	{"alimentos", "food"},
}

var (
	orderStatuses      = []string{"delivered", "shipped", "canceled", "invoiced", "processing", "unavailable"}
	orderStatusWeights = []int{90, 4, 2, 2, 1, 1}

	paymentTypes       = []string{"credit_card", "boleto", "voucher", "debit_card"}
	paymentTypeWeights = []int{74, 19, 5, 2}

	reviewScores       = []int{1, 2, 3, 4, 5}
	reviewScoreWeights = []int{11, 3, 8, 19, 59}

	reviewTitles = []string{"Recomendo", "Ótimo produto", "Não recebi", "Bom", "Chegou rápido", "Péssimo"}
)
