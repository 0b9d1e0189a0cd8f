package uploads

import "mime/multipart"

type CoverPayload struct {
	DataURL  string  `json:"dataUrl" mod:"trim" validate:"required"`
	BookName string  `json:"bookName" mod:"trim" validate:"required"`
	Filename *string `json:"filename" mod:"trim"`
}

type PDFForm struct {
	BookName string  `form:"bookName" mod:"trim" validate:"required"`
	BookID   *string `form:"bookId" mod:"trim" validate:"omitempty,uuid"`

	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}

type PresignQuery struct {
	Key       string `query:"key" mod:"trim" validate:"required"`
	ExpiresIn int    `query:"expiresIn" default:"3600" validate:"min=1,max=604800"`
}
