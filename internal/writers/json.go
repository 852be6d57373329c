package writers

import (
	"io"

	"heredity/internal/engine"
	"heredity/internal/jsonlutil"
	"heredity/internal/jsonutil"
	"heredity/pkg/api"
)

func init() {
	Register("json", WriteJSON)
	Register("jsonl", WriteJSONL)
}

// ToAPI converts a marginal to the v1 wire type.
func ToAPI(m engine.Marginal) api.PosteriorV1 {
	return api.PosteriorV1{
		Name:  m.Name,
		Gene:  api.GeneV1{Zero: m.Gene[0], One: m.Gene[1], Two: m.Gene[2]},
		Trait: api.TraitV1{True: m.Trait[1], False: m.Trait[0]},
	}
}

// WriteJSON emits one indented api.RunV1 document. Values are full precision.
func WriteJSON(w io.Writer, r Report) error {
	doc := api.RunV1{
		RunID:       r.RunID,
		Source:      r.Source,
		Individuals: len(r.Marginals),
		Scored:      r.Scored,
		Posteriors:  make([]api.PosteriorV1, 0, len(r.Marginals)),
	}
	for _, m := range r.Marginals {
		doc.Posteriors = append(doc.Posteriors, ToAPI(m))
	}
	return jsonutil.EncodePretty(w, doc)
}

// WriteJSONL emits one api.PosteriorV1 per line.
func WriteJSONL(w io.Writer, r Report) error {
	return jsonlutil.Write(w, r.Marginals, func(m engine.Marginal) any { return ToAPI(m) })
}
