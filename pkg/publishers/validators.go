package publishers

type ListPublishersQuery struct {
	Limit  int     `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=100"`
	Offset int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

type CreatePublisherPayload struct {
	PublisherName string  `json:"publisherName" mod:"trim" validate:"required,max=300"`
	ContactEmail  *string `json:"contactEmail" mod:"trim" validate:"omitempty,email"`
	Website       *string `json:"website" mod:"trim" validate:"omitempty,url"`
}
