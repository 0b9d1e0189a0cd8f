package publishers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/larlarbooks/larlar/pkg/pagination"
	"github.com/larlarbooks/larlar/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Create(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{publisherService: NewService(db)}

	payload := `{"publisherName":"Seikku Cho Cho","contactEmail":"hello@seikku.example","website":"https://seikku.example"}`
	c, rr := testutils.NewContext(t, payload, http.MethodPost, "/publishers")
	require.NoError(t, h.create(c))
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Publisher *models.Publisher `json:"publisher"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Seikku Cho Cho", resp.Publisher.PublisherName)
	require.NotNil(t, resp.Publisher.Website)
	assert.Equal(t, "https://seikku.example", *resp.Publisher.Website)
}

func TestHandler_Create_Validation(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{publisherService: NewService(db)}

	cases := map[string]string{
		"missing name": `{"website":"https://seikku.example"}`,
		"bad website":  `{"publisherName":"Seikku","website":"seikku.example"}`,
		"bad email":    `{"publisherName":"Seikku","contactEmail":"nope"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(tt *testing.T) {
			c, _ := testutils.NewContext(tt, payload, http.MethodPost, "/publishers")
			err := h.create(c)
			var errResp *errcodes.Error
			require.ErrorAs(tt, err, &errResp)
			assert.Equal(tt, http.StatusBadRequest, errResp.HTTPCode)
		})
	}
}

func TestHandler_List(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{publisherService: NewService(db)}
	testutils.CreatePublisher(t, db, "Zwe", nil)
	testutils.CreatePublisher(t, db, "Arr", nil)

	c, rr := testutils.NewContext(t, "", http.MethodGet, "/publishers?limit=1&offset=1")
	require.NoError(t, h.list(c))

	var resp struct {
		Publishers []*models.Publisher   `json:"publishers"`
		Pagination pagination.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Publishers, 1)
	assert.Equal(t, "Zwe", resp.Publishers[0].PublisherName)
	assert.Equal(t, pagination.Pagination{Total: 2, Limit: 1, Offset: 1}, resp.Pagination)
}
