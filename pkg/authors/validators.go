package authors

type ListAuthorsQuery struct {
	Limit  int     `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=100"`
	Offset int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
	UserID *string `query:"userId" json:"userId,omitempty"`
}

type CreateAuthorPayload struct {
	AuthorName            string  `json:"authorName" mod:"trim" validate:"required,max=300"`
	AuthorProfileImageURL *string `json:"authorProfileImageUrl" mod:"trim" validate:"omitempty,url"`
	UserID                *string `json:"userId" validate:"omitempty,uuid"`
}
