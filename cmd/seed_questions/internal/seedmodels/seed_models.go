package seedmodels

import "question-bank/internal/domain"

// SeedQuestion defines one question in the JSON seed file.
type SeedQuestion struct {
	Passage     string               `json:"passage"`
	Question    string               `json:"question"`
	Choices     domain.AnswerChoices `json:"choices"`
	Answer      string               `json:"answer"`
	Explanation string               `json:"explanation"`
	Difficulty  string               `json:"difficulty"`
}

// SeedQuestionType groups questions of one type.
type SeedQuestionType struct {
	Name      string         `json:"question_type"`
	Questions []SeedQuestion `json:"questions"`
}

// SeedDomain groups question types of one domain.
type SeedDomain struct {
	Name          string             `json:"domain"`
	QuestionTypes []SeedQuestionType `json:"question_types"`
}

// SeedSection is the top level of the JSON seed file.
type SeedSection struct {
	Section string       `json:"section"`
	Domains []SeedDomain `json:"domains"`
}
