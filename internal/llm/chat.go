package llm

// OpenAI-compatible chat completion wire types, as served by llama.cpp,
// LM Studio, Ollama and friends.

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// errorResponse is the llama-server error envelope. Only the fields needed
// to recognise a context overflow are decoded.
type errorResponse struct {
	Error *struct {
		Code          int    `json:"code"`
		Message       string `json:"message"`
		Type          string `json:"type"`
		PromptTokens  int    `json:"n_prompt_tokens"`
		ContextTokens int    `json:"n_ctx"`
	} `json:"error"`
}
