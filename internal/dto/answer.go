package dto

type AnswerRequest struct {
	Question string `json:"question"`
}

type AnswerResponse struct {
	Answer            string `json:"answer"`
	FromKnowledgeBase bool   `json:"from_knowledge_base"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
