package morph

import "github.com/morispolanco/subjuntivo-buscador/types"

func present(forms ...string) []Form {
	result := make([]Form, len(forms))
	for i, f := range forms {
		result[i] = Form{Text: f, Tense: types.TensePresent, PersonNumber: persons[i]}
	}
	return result
}

// irregularVerbs is the fixed irregular-verb lexicon. It is compiled in so the pattern strategy
// works without any resource files.
var irregularVerbs = []Verb{
	{Lemma: "ser", PresentStem: "se", PreteriteStem: "fue", Aux: true},
	{Lemma: "estar", PreteriteStem: "estuvie", Aux: true, Overrides: present("esté", "estés", "esté", "estemos", "estéis", "estén")},
	{Lemma: "haber", PresentStem: "hay", PreteriteStem: "hubie", Aux: true},
	{Lemma: "ir", PresentStem: "vay", PreteriteStem: "fue"},
	{Lemma: "dar", Overrides: present("dé", "des", "dé", "demos", "deis", "den")},
	{Lemma: "ver", PresentStem: "ve"},
	{Lemma: "tener", PresentStem: "teng", PreteriteStem: "tuvie"},
	{Lemma: "venir", PresentStem: "veng", PreteriteStem: "vinie"},
	{Lemma: "hacer", PresentStem: "hag", PreteriteStem: "hicie"},
	{Lemma: "decir", PresentStem: "dig", PreteriteStem: "dije"},
	{Lemma: "poner", PresentStem: "pong", PreteriteStem: "pusie"},
	{Lemma: "salir", PresentStem: "salg"},
	{Lemma: "valer", PresentStem: "valg"},
	{Lemma: "traer", PresentStem: "traig", PreteriteStem: "traje"},
	{Lemma: "caer", PresentStem: "caig"},
	{Lemma: "oír", PresentStem: "oig"},
	{Lemma: "saber", PresentStem: "sep", PreteriteStem: "supie"},
	{Lemma: "caber", PresentStem: "quep", PreteriteStem: "cupie"},
	{Lemma: "poder", PresentStem: "pued", PresentPluralStem: "pod", PreteriteStem: "pudie"},
	{Lemma: "querer", PresentStem: "quier", PresentPluralStem: "quer", PreteriteStem: "quisie"},
	{Lemma: "andar", PreteriteStem: "anduvie"},
	{Lemma: "conducir", PreteriteStem: "conduje"},
	{Lemma: "producir", PreteriteStem: "produje"},
	{Lemma: "traducir", PreteriteStem: "traduje"},
	{Lemma: "reducir", PreteriteStem: "reduje"},
	{Lemma: "mantener", PresentStem: "manteng", PreteriteStem: "mantuvie"},
	{Lemma: "obtener", PresentStem: "obteng", PreteriteStem: "obtuvie"},
	{Lemma: "contener", PresentStem: "conteng", PreteriteStem: "contuvie"},
	{Lemma: "detener", PresentStem: "deteng", PreteriteStem: "detuvie"},
	{Lemma: "sostener", PresentStem: "sosteng", PreteriteStem: "sostuvie"},
	{Lemma: "suponer", PresentStem: "supong", PreteriteStem: "supusie"},
	{Lemma: "proponer", PresentStem: "propong", PreteriteStem: "propusie"},
	{Lemma: "componer", PresentStem: "compong", PreteriteStem: "compusie"},
	{Lemma: "disponer", PresentStem: "dispong", PreteriteStem: "dispusie"},
	{Lemma: "convenir", PresentStem: "conveng", PreteriteStem: "convinie"},
	{Lemma: "prevenir", PresentStem: "preveng", PreteriteStem: "previnie"},
	{Lemma: "deshacer", PresentStem: "deshag", PreteriteStem: "deshicie"},
	{Lemma: "satisfacer", PresentStem: "satisfag", PreteriteStem: "satisficie"},
	{Lemma: "atraer", PresentStem: "atraig", PreteriteStem: "atraje"},
	{Lemma: "distraer", PresentStem: "distraig", PreteriteStem: "distraje"},
	{Lemma: "reír", PresentStem: "rí", PresentPluralStem: "ri", PreteriteStem: "rie"},
	{Lemma: "sonreír", PresentStem: "sonrí", PresentPluralStem: "sonri", PreteriteStem: "sonrie"},
	{Lemma: "pensar", PresentStem: "piens", PresentPluralStem: "pens"},
	{Lemma: "cerrar", PresentStem: "cierr", PresentPluralStem: "cerr"},
	{Lemma: "empezar", PresentStem: "empiec", PresentPluralStem: "empec"},
	{Lemma: "comenzar", PresentStem: "comienc", PresentPluralStem: "comenc"},
	{Lemma: "despertar", PresentStem: "despiert", PresentPluralStem: "despert"},
	{Lemma: "nevar", PresentStem: "niev", PresentPluralStem: "nev"},
	{Lemma: "contar", PresentStem: "cuent", PresentPluralStem: "cont"},
	{Lemma: "costar", PresentStem: "cuest", PresentPluralStem: "cost"},
	{Lemma: "encontrar", PresentStem: "encuentr", PresentPluralStem: "encontr"},
	{Lemma: "recordar", PresentStem: "recuerd", PresentPluralStem: "record"},
	{Lemma: "mostrar", PresentStem: "muestr", PresentPluralStem: "mostr"},
	{Lemma: "probar", PresentStem: "prueb", PresentPluralStem: "prob"},
	{Lemma: "soñar", PresentStem: "sueñ", PresentPluralStem: "soñ"},
	{Lemma: "jugar", PresentStem: "juegu", PresentPluralStem: "jugu"},
	{Lemma: "volver", PresentStem: "vuelv", PresentPluralStem: "volv"},
	{Lemma: "llover", PresentStem: "lluev", PresentPluralStem: "llov"},
	{Lemma: "mover", PresentStem: "muev", PresentPluralStem: "mov"},
	{Lemma: "entender", PresentStem: "entiend", PresentPluralStem: "entend"},
	{Lemma: "perder", PresentStem: "pierd", PresentPluralStem: "perd"},
	{Lemma: "defender", PresentStem: "defiend", PresentPluralStem: "defend"},
	{Lemma: "dormir", PresentStem: "duerm", PresentPluralStem: "durm", PreteriteStem: "durmie"},
	{Lemma: "morir", PresentStem: "muer", PresentPluralStem: "mur", PreteriteStem: "murie"},
	{Lemma: "sentir", PresentStem: "sient", PresentPluralStem: "sint", PreteriteStem: "sintie"},
	{Lemma: "mentir", PresentStem: "mient", PresentPluralStem: "mint", PreteriteStem: "mintie"},
	{Lemma: "preferir", PresentStem: "prefier", PresentPluralStem: "prefir", PreteriteStem: "prefirie"},
	{Lemma: "sugerir", PresentStem: "sugier", PresentPluralStem: "sugir", PreteriteStem: "sugirie"},
	{Lemma: "requerir", PresentStem: "requier", PresentPluralStem: "requir", PreteriteStem: "requirie"},
	{Lemma: "advertir", PresentStem: "adviert", PresentPluralStem: "advirt", PreteriteStem: "advirtie"},
	{Lemma: "convertir", PresentStem: "conviert", PresentPluralStem: "convirt", PreteriteStem: "convirtie"},
	{Lemma: "divertir", PresentStem: "diviert", PresentPluralStem: "divirt", PreteriteStem: "divirtie"},
	{Lemma: "herir", PresentStem: "hier", PresentPluralStem: "hir", PreteriteStem: "hirie"},
	{Lemma: "adquirir", PresentStem: "adquier", PresentPluralStem: "adquir"},
	{Lemma: "pedir", PresentStem: "pid", PreteriteStem: "pidie"},
	{Lemma: "seguir", PresentStem: "sig", PreteriteStem: "siguie"},
	{Lemma: "conseguir", PresentStem: "consig", PreteriteStem: "consiguie"},
	{Lemma: "servir", PresentStem: "sirv", PreteriteStem: "sirvie"},
	{Lemma: "repetir", PresentStem: "repit", PreteriteStem: "repitie"},
	{Lemma: "elegir", PresentStem: "elij", PreteriteStem: "eligie"},
	{Lemma: "vestir", PresentStem: "vist", PreteriteStem: "vistie"},
	{Lemma: "medir", PresentStem: "mid", PreteriteStem: "midie"},
	{Lemma: "impedir", PresentStem: "impid", PreteriteStem: "impidie"},
	{Lemma: "corregir", PresentStem: "corrij", PreteriteStem: "corrigie"},
}
