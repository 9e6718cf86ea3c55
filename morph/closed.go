package morph

import "github.com/morispolanco/subjuntivo-buscador/types"

func words(pos types.POS, list ...string) map[string]types.POS {
	result := make(map[string]types.POS, len(list))
	for _, w := range list {
		result[w] = pos
	}
	return result
}

func merge(maps ...map[string]types.POS) map[string]types.POS {
	result := make(map[string]types.POS)
	for _, m := range maps {
		for k, v := range m {
			if _, ok := result[k]; !ok {
				result[k] = v
			}
		}
	}
	return result
}

// closedClassWords lists function words. A word listed here is never read as a verb, so
// "entre" and "sobre" stay prepositions.
var closedClassWords = merge(
	words(types.POSDet,
		"el", "la", "los", "las", "un", "una", "unos", "unas", "lo",
		"este", "esta", "estos", "estas", "ese", "esa", "esos", "esas",
		"aquel", "aquella", "aquellos", "aquellas",
		"mi", "mis", "tu", "tus", "su", "sus", "nuestro", "nuestra", "nuestros", "nuestras",
		"vuestro", "vuestra", "vuestros", "vuestras",
		"cada", "todo", "toda", "todos", "todas", "otro", "otra", "otros", "otras",
		"algún", "alguna", "algunos", "algunas", "ningún", "ninguna", "varios", "varias",
		"mucho", "mucha", "muchos", "muchas", "poco", "poca", "pocos", "pocas",
		"tanto", "tanta", "tantos", "tantas", "cuánto", "cuánta", "cuántos", "cuántas",
		"mismo", "misma", "mismos", "mismas", "ambos", "ambas", "cierto", "cierta",
	),
	words(types.POSAdp,
		"a", "al", "ante", "bajo", "con", "contra", "de", "del", "desde", "durante", "en",
		"entre", "hacia", "hasta", "mediante", "para", "por", "según", "sin", "so", "sobre",
		"tras", "versus", "vía",
	),
	words(types.POSPron,
		"yo", "tú", "él", "ella", "ello", "nosotros", "nosotras", "vosotros", "vosotras",
		"ellos", "ellas", "usted", "ustedes", "me", "te", "se", "nos", "os", "le", "les",
		"mí", "ti", "conmigo", "contigo", "consigo", "esto", "eso", "aquello",
		"quien", "quienes", "quién", "quiénes", "cual", "cuales", "cuál", "cuáles",
		"qué", "cuyo", "cuya", "cuyos", "cuyas", "algo", "alguien", "nadie", "nada",
		"alguno", "ninguno", "cualquiera", "cualesquiera", "quienquiera",
	),
	words(types.POSCConj,
		"y", "e", "o", "u", "ni", "pero", "mas", "sino",
	),
	words(types.POSSConj,
		"que", "si", "porque", "aunque", "cuando", "como", "donde", "mientras", "pues",
		"conque", "luego",
	),
	words(types.POSAdv,
		"no", "sí", "ya", "muy", "más", "menos", "tan", "bien", "mal", "aquí", "allí", "ahí",
		"allá", "acá", "hoy", "ayer", "mañana", "ahora", "después", "antes", "siempre",
		"nunca", "jamás", "también", "tampoco", "quizá", "quizás", "ojalá", "ojala", "acaso",
		"casi", "solo", "sólo", "todavía", "aún", "aun", "apenas", "entonces", "así",
		"además", "incluso", "demasiado", "bastante", "pronto", "tarde", "temprano", "dentro",
		"cerca", "lejos", "encima", "debajo", "delante", "detrás", "arriba", "abajo",
		"adelante", "atrás", "siquiera", "tal", "dónde", "cuándo", "cómo",
	),
)

// nonVerbs are frequent nouns and adjectives whose endings look like imperfect or future
// subjunctive endings.
var nonVerbs = map[string]bool{
	"lugares": true, "hogares": true, "collares": true, "altares": true, "millares": true,
	"familiares": true, "particulares": true, "populares": true, "militares": true,
	"similares": true, "escolares": true, "titulares": true, "regulares": true,
	"solares": true, "polares": true, "celulares": true, "singulares": true,
	"musculares": true, "nucleares": true, "vulgares": true, "seculares": true,
	"clase": true, "clases": true, "base": true, "bases": true, "fase": true, "fases": true,
	"frase": true, "frases": true, "clara": true, "claras": true, "vara": true, "varas": true,
	"tiara": true, "mascara": true, "fiera": true, "fieras": true, "vez": true, "veces": true,
}
