package dto

type NoteInput struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}
