package quiz

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

const minOptions = 2

// Question is one multiple-choice record of a page. CorrectIndex indexes Options in
// storage order.
type Question struct {
	ID           int
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// PageQuestionSet is the ordered question list of a single page.
type PageQuestionSet []Question

// Bank maps page keys to their question sets. A Bank is never mutated after it is built;
// a reload produces a new Bank.
type Bank struct {
	pages map[string]PageQuestionSet
}

// Issue describes a bank record that was skipped while decoding.
type Issue struct {
	PageKey    string
	QuestionID int
	Position   int
	Reason     string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: question #%d (id %d): %s", i.PageKey, i.Position+1, i.QuestionID, i.Reason)
}

type bankPage struct {
	Questions []bankQuestion `json:"questions"`
}

type bankQuestion struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation *string  `json:"explanation,omitempty"`
}

// NewBank builds a bank from already validated sets.
func NewBank(pages map[string]PageQuestionSet) *Bank {
	copied := make(map[string]PageQuestionSet, len(pages))
	for key, set := range pages {
		copied[key] = append(PageQuestionSet(nil), set...)
	}
	return &Bank{pages: copied}
}

// EmptyBank is the bank of a page whose bank could not be loaded.
func EmptyBank() *Bank {
	return &Bank{pages: map[string]PageQuestionSet{}}
}

// DecodeBank parses a bank document. Malformed JSON is an error; records that break the
// question invariants are dropped and reported as issues.
func DecodeBank(r io.Reader) (*Bank, []Issue, error) {
	var raw map[string]bankPage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("decode question bank: %w", err)
	}

	var issues []Issue
	pages := make(map[string]PageQuestionSet, len(raw))
	owners := make(map[int]string)

	for _, pageKey := range sortedKeys(raw) {
		seen := make(map[int]bool)
		set := make(PageQuestionSet, 0, len(raw[pageKey].Questions))

		for position, item := range raw[pageKey].Questions {
			issue := Issue{PageKey: pageKey, QuestionID: item.ID, Position: position}
			switch {
			case len(item.Options) < minOptions:
				issue.Reason = fmt.Sprintf("needs at least %d options, has %d", minOptions, len(item.Options))
			case item.Correct < 0 || item.Correct >= len(item.Options):
				issue.Reason = fmt.Sprintf("correct index %d out of range [0,%d)", item.Correct, len(item.Options))
			case seen[item.ID]:
				issue.Reason = "duplicate id on page"
			}
			if issue.Reason != "" {
				issues = append(issues, issue)
				continue
			}

			if owner, ok := owners[item.ID]; ok && owner != pageKey {
				// Answer state is scoped to one page, so cross-page reuse still works.
				issues = append(issues, Issue{
					PageKey:    pageKey,
					QuestionID: item.ID,
					Position:   position,
					Reason:     "id also used on " + owner + " (kept)",
				})
			} else {
				owners[item.ID] = pageKey
			}
			seen[item.ID] = true

			explanation := ""
			if item.Explanation != nil {
				explanation = *item.Explanation
			}
			set = append(set, Question{
				ID:           item.ID,
				Text:         item.Question,
				Options:      append([]string(nil), item.Options...),
				CorrectIndex: item.Correct,
				Explanation:  explanation,
			})
		}
		pages[pageKey] = set
	}

	return &Bank{pages: pages}, issues, nil
}

// Lookup returns the question set of a page. Pages without questions are absent.
func (b *Bank) Lookup(pageKey string) (PageQuestionSet, bool) {
	if b == nil {
		return nil, false
	}
	set, ok := b.pages[pageKey]
	if !ok || len(set) == 0 {
		return nil, false
	}
	return set, true
}

func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.pages)
}

// QuestionCount is the number of questions across all pages.
func (b *Bank) QuestionCount() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, set := range b.pages {
		total += len(set)
	}
	return total
}

func (b *Bank) PageKeys() []string {
	if b == nil {
		return nil
	}
	return sortedKeys(b.pages)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
