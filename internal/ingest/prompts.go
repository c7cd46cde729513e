package ingest

// Prompt catalog per language. The deployment serves mostly Italian job
// offers, English is the fallback.

type triplePrompt struct {
	System string
	User   string
}

type promptSet struct {
	Keywords string
	Triple   triplePrompt
}

var prompts = map[string]promptSet{
	LangItalian: {
		Keywords: "Ritorna sole parole chiave brevi e concise dal seguente testo.\n------\n TESTO: %s",
		Triple: triplePrompt{
			System: `Sei un assistente specializzato nell'estrazione di triple RDF da un testo.
Le triple sono strutturate nella forma (soggetto, predicato, oggetto) e rappresentano fatti concisi.
Le entita' devono essere identificate chiaramente, e i predicati devono esprimere relazioni semantiche tra di esse.
Evita informazioni ridondanti o interpretazioni soggettive.
Restituisci solo triple ben formate, senza altre spiegazioni o testo aggiuntivo.`,
			User: `---------------------------------------------------------------
Ecco un testo da cui estrarre triple RDF:
"%s"
---------------------------------------------------------------
Usa le seguenti keyword per aiutarti a identificare relazioni e concetti chiave: %s
---------------------------------------------------------------
Restituisci le triple nel formato (soggetto, predicato, oggetto).`,
		},
	},
	LangEnglish: {
		Keywords: "RETURN ONLY BRIEF AND CONCISE KEYWORDS FROM THE FOLLOWING TEXT.\n------\n TEXT: %s",
		Triple: triplePrompt{
			System: `You are an assistant specialized in extracting RDF triples from text.
Triples follow the structure (subject, predicate, object) and represent concise facts.
Entities must be clearly identified, and predicates should express semantic relationships between them.
Avoid redundant information or subjective interpretations.
Return only well-formed triples without any additional explanation or extra text.`,
			User: `Here is a text from which to extract RDF triples:
"%s"

Use the following keywords to help identify key concepts and relationships: %s

Return the triples in the format (subject, predicate, object).`,
		},
	},
}

func promptsFor(lang string) promptSet {
	if p, ok := prompts[lang]; ok {
		return p
	}
	return prompts[LangEnglish]
}

// JSON schemas constraining model output, passed as the generate format.

var keywordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"keywords": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []string{"keywords"},
}

var tripleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"triple_list": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 3,
				"maxItems": 3,
			},
		},
	},
	"required": []string{"triple_list"},
}
