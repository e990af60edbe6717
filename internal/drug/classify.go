package drug

import (
	"fmt"
	"log"
	"strings"
)

// Level is the classifier's terminal risk verdict.
type Level string

const (
	LevelSafe         Level = "safe"
	LevelCaution      Level = "caution"
	LevelDanger       Level = "danger"
	LevelAmbiguous    Level = "ambiguous"
	LevelError        Level = "error"
	LevelInsufficient Level = "insufficient-input"
)

// Verdict carries the risk level for a drug pair plus display-ready reason
// lines. Joining the lines (blank-line separated) is the caller's concern.
type Verdict struct {
	Level   Level
	Reasons []string
}

// Classifier derives a risk verdict for a pair of drug names from the
// reference store and the keyword taxonomy. The keyword slices may be
// replaced wholesale; their order is significant.
type Classifier struct {
	store           *Store
	DangerKeywords  []string
	CautionKeywords []string
}

func NewClassifier(store *Store) *Classifier {
	return &Classifier{
		store:           store,
		DangerKeywords:  DangerKeywords,
		CautionKeywords: CautionKeywords,
	}
}

// Classify looks up every interaction row matching the pair in either
// orientation and reduces the distinct detail texts to a single verdict.
// Absence of rows is reported as safe, which mirrors the dataset's own
// framing: it only records known interactions.
func (c *Classifier) Classify(drugA, drugB string) Verdict {
	if len([]rune(Normalize(drugA))) < 2 || len([]rune(Normalize(drugB))) < 2 {
		return Verdict{Level: LevelInsufficient, Reasons: []string{"약물 이름이 너무 짧습니다. (2글자 이상 입력)"}}
	}

	rows, err := c.store.Interactions(drugA, drugB)
	if err != nil {
		log.Printf("interaction lookup failed for %q / %q: %v", drugA, drugB, err)
		return Verdict{Level: LevelError, Reasons: []string{"데이터베이스 검색 중 오류가 발생했습니다."}}
	}
	if len(rows) == 0 {
		return Verdict{
			Level:   LevelSafe,
			Reasons: []string{fmt.Sprintf("'%s'와 '%s' 간의 상호작용 정보가 없습니다.", drugA, drugB)},
		}
	}

	products := make(map[string]struct{})
	for _, r := range rows {
		if r.ProductA != "" {
			products[r.ProductA] = struct{}{}
		}
		if r.ProductB != "" {
			products[r.ProductB] = struct{}{}
		}
	}
	if len(products) > 2 {
		return Verdict{
			Level:   LevelAmbiguous,
			Reasons: []string{"🔍 검색 결과가 너무 많습니다. 해당하는 제품/용량이 여러 개 있습니다. 약물 이름을 더 정확하게 입력해주세요. (예: '구주염산페치딘주 50mg')"},
		}
	}

	level := LevelSafe
	var reasons []string
	seenDetails := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seenDetails[r.Detail]; ok {
			continue
		}
		seenDetails[r.Detail] = struct{}{}

		if kw := firstContained(c.DangerKeywords, r.Detail); kw != "" {
			level = LevelDanger
			reasons = append(reasons, "🚨 위험: "+r.Detail)
			continue
		}
		if kw := firstContained(c.CautionKeywords, r.Detail); kw != "" {
			if level != LevelDanger {
				level = LevelCaution
			}
			reasons = append(reasons, "⚠️ 주의: "+r.Detail)
		}
	}
	if len(reasons) == 0 {
		return Verdict{
			Level:   LevelAmbiguous,
			Reasons: []string{"ℹ️ 상호작용 정보가 있으나, 지정된 위험/주의 키워드는 발견되지 않았습니다. 전문가와 상담하세요."},
		}
	}
	return Verdict{Level: level, Reasons: reasons}
}

func firstContained(keywords []string, detail string) string {
	for _, kw := range keywords {
		if strings.Contains(detail, kw) {
			return kw
		}
	}
	return ""
}
