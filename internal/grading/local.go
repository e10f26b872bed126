package grading

import (
	"context"
	"encoding/json"
	"strconv"
)

// LocalGrader scores free-text answers against the paper's stored
// model answers, for deployments that run without the hosted grading
// service. Exact normalized match earns full marks, a numeric match
// within tolerance earns full marks, and a near-miss within the edit
// distance earns half credit.
type LocalGrader struct {
	papers  PaperCatalog
	maxEdit int
}

func NewLocalGrader(papers PaperCatalog) *LocalGrader {
	return &LocalGrader{papers: papers, maxEdit: 1}
}

func (g *LocalGrader) Grade(ctx context.Context, req GradeRequest) (GradeResponse, error) {
	p, err := g.papers.GetPaper(ctx, req.PaperID)
	if err != nil {
		return GradeResponse{}, err
	}

	total := 0.0
	breakdown := make(map[string]json.RawMessage, len(p.Questions))
	for _, q := range p.Questions {
		awarded := scoreAnswer(req.Answers[q.ID], q.Answer, float64(q.Marks), g.maxEdit)
		total += awarded
		buf, _ := json.Marshal(map[string]any{"awarded": awarded, "max": q.Marks})
		breakdown[strconv.Itoa(q.ID)] = buf
	}
	return GradeResponse{FinalScore: total, Breakdown: breakdown}, nil
}

func scoreAnswer(response, key string, marks float64, maxEdit int) float64 {
	nr := normalize(response)
	nk := normalize(key)
	if nr == "" || nk == "" {
		return 0
	}
	if nr == nk {
		return marks
	}
	if rv, rOK := parseFloatLoose(nr); rOK {
		if kv, kOK := parseFloatLoose(nk); kOK {
			if numericClose(rv, kv) {
				return marks
			}
			return 0
		}
	}
	if maxEdit > 0 && levenshtein(nr, nk) <= maxEdit {
		return marks * 0.5
	}
	return 0
}
