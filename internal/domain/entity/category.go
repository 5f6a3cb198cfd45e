// Package entity contains the core business objects of the project.
package entity

// Category is one of the fixed marketplace categories a listing belongs to.
type Category string

const (
	CategoryAgroIndustria   Category = "agro_industria"
	CategoryAnimais         Category = "animais"
	CategoryArtigosInfantis Category = "artigos_infantis"
	CategoryAudio           Category = "audio"
	CategoryAutos           Category = "autos"
	CategoryAutopecas       Category = "autopecas"
	CategoryCamerasDrones   Category = "cameras_drones"
	CategoryCasaDecoracao   Category = "casa_decoracao"
	CategoryCelulares       Category = "celulares"
	CategoryComercio        Category = "comercio"
	CategoryEletro          Category = "eletro"
	CategoryEsportes        Category = "esportes"
	CategoryEscritorio      Category = "escritorio"
	CategoryGames           Category = "games"
	CategoryImoveis         Category = "imoveis"
	CategoryInformatica     Category = "informatica"
	CategoryConstrucao      Category = "construcao"
	CategoryModaBeleza      Category = "moda_beleza"
	CategoryMoveis          Category = "moveis"
	CategoryMusicaHobbies   Category = "musica_hobbies"
	CategoryServicos        Category = "servicos"
	CategoryTVsVideo        Category = "tvs_video"
	CategoryVagasEmprego    Category = "vagas_emprego"
)

// categoryLabels maps a category value to its human-readable pt-BR label.
var categoryLabels = map[Category]string{
	CategoryAgroIndustria:   "Agro e indústria",
	CategoryAnimais:         "Animais de estimação",
	CategoryArtigosInfantis: "Artigos Infantis",
	CategoryAudio:           "Áudio",
	CategoryAutos:           "Autos",
	CategoryAutopecas:       "Autopeças",
	CategoryCamerasDrones:   "Câmeras e drones",
	CategoryCasaDecoracao:   "Casa, Decoração e Utensílios",
	CategoryCelulares:       "Celulares e telefonia",
	CategoryComercio:        "Comércio",
	CategoryEletro:          "Eletro",
	CategoryEsportes:        "Esportes e fitness",
	CategoryEscritorio:      "Escritório e Home Office",
	CategoryGames:           "Games",
	CategoryImoveis:         "Imóveis",
	CategoryInformatica:     "Informática",
	CategoryConstrucao:      "Materiais de construção",
	CategoryModaBeleza:      "Moda e beleza",
	CategoryMoveis:          "Móveis",
	CategoryMusicaHobbies:   "Música e hobbies",
	CategoryServicos:        "Serviços",
	CategoryTVsVideo:        "TVs e vídeo",
	CategoryVagasEmprego:    "Vagas de emprego",
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is one of the fixed marketplace categories.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]

	return ok
}

// Label returns the human-readable pt-BR label for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}

	return "Outros"
}
