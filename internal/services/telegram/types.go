package telegram

// Update is one entry from the getUpdates long poll.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is an inbound chat message. Only the fields the dispatcher needs
// are mapped.
type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
	Video     *Video `json:"video"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID int64 `json:"id"`
}

// Video describes a video attachment.
type Video struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	Duration int    `json:"duration"`
}

// File is the download handle returned by getFile.
type File struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size"`
	FilePath string `json:"file_path"`
}
