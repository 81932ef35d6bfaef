package service

import "strings"

// ChatbotReply is a canned FAQ answer with follow-up options.
type ChatbotReply struct {
	Message string   `json:"message"`
	Options []string `json:"options"`
}

// ChatbotService answers portal FAQs with keyword-matched static replies.
// There is no model behind it; it is a lookup table and is deliberately
// kept that simple.
type ChatbotService struct {
	replies map[string]ChatbotReply
}

func NewChatbotService() *ChatbotService {
	return &ChatbotService{
		replies: map[string]ChatbotReply{
			"greeting": {
				Message: "Hello! I'm here to help you with college complaints. How can I assist you today?",
				Options: []string{"File a complaint", "Check complaint status", "General guidance"},
			},
			"file-complaint": {
				Message: "To file a complaint, please go to the Dashboard and click 'File New Complaint'. You'll need to provide: Category, Title, Description, and optionally upload proof images.",
				Options: []string{"Complaint categories", "File now", "Back"},
			},
			"check-status": {
				Message: "You can check your complaint status in the Dashboard under 'My Complaints'. Each complaint shows its current status: Pending, In Progress, or Resolved.",
				Options: []string{"View dashboard", "Back"},
			},
			"categories": {
				Message: "We handle these complaint categories: Hostel Issues, Mess/Food, Academic Problems, Administrative, College Infrastructure, and Others.",
				Options: []string{"Hostel issues", "Academic problems", "Back"},
			},
			"default": {
				Message: "I'm here to help with college complaints. You can file new complaints, check status, or get guidance. What would you like to do?",
				Options: []string{"File complaint", "Check status", "Get help"},
			},
		},
	}
}

// Reply picks the canned answer whose keywords appear in the message.
// Earlier rules win; anything unrecognized gets the default answer.
func (s *ChatbotService) Reply(message string) ChatbotReply {
	m := strings.ToLower(message)

	switch {
	case strings.Contains(m, "hello") || strings.Contains(m, "hi"):
		return s.replies["greeting"]
	case strings.Contains(m, "file") || strings.Contains(m, "complaint"):
		return s.replies["file-complaint"]
	case strings.Contains(m, "status") || strings.Contains(m, "check"):
		return s.replies["check-status"]
	case strings.Contains(m, "category") || strings.Contains(m, "type"):
		return s.replies["categories"]
	}
	return s.replies["default"]
}
