package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_ListPosturesByTherapyType(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	ansiedad := testutil.NewTherapyTypeBuilder().WithName("Ansiedad").Build(t, ts.DB.DB)
	espalda := testutil.NewTherapyTypeBuilder().WithName("Dolor de espalda").Build(t, ts.DB.DB)

	tagged := testutil.NewPostureBuilder().
		WithNames("Balasana", "Postura del niño").
		WithTherapyTypes(ansiedad.ID).
		Build(t, ts.DB.DB)
	both := testutil.NewPostureBuilder().
		WithNames("Tadasana", "Postura de la montaña").
		WithTherapyTypes(ansiedad.ID, espalda.ID).
		Build(t, ts.DB.DB)
	testutil.NewPostureBuilder().
		WithNames("Bhujangasana", "Postura de la cobra").
		WithTherapyTypes(espalda.ID).
		Build(t, ts.DB.DB)

	resp := doRequest(t, http.MethodGet, ts.APIURL("/postures?therapyTypeId="+ansiedad.ID.String()), token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var postures []domain.Posture
	testutil.AssertJSONResponse(t, resp, &postures)
	require.Len(t, postures, 2)

	got := map[uuid.UUID]bool{}
	for _, p := range postures {
		got[p.ID] = true
	}
	assert.True(t, got[tagged.ID])
	assert.True(t, got[both.ID])

	t.Run("unknown therapy type", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/postures?therapyTypeId="+uuid.New().String()), token, nil)
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Therapy type not found")
	})

	t.Run("invalid therapy type id", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/postures?therapyTypeId=not-a-uuid"), token, nil)
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid therapy type ID")
	})
}

func TestCatalogHandler_ListPosturesByIDs(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	first := testutil.NewPostureBuilder().Build(t, ts.DB.DB)
	second := testutil.NewPostureBuilder().Build(t, ts.DB.DB)
	testutil.NewPostureBuilder().Build(t, ts.DB.DB)

	url := ts.APIURL(fmt.Sprintf("/postures?ids=%s,%s", first.ID, second.ID))
	resp := doRequest(t, http.MethodGet, url, token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var postures []domain.Posture
	testutil.AssertJSONResponse(t, resp, &postures)
	require.Len(t, postures, 2)

	got := map[uuid.UUID]bool{}
	for _, p := range postures {
		got[p.ID] = true
	}
	assert.True(t, got[first.ID])
	assert.True(t, got[second.ID])

	t.Run("invalid posture id", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/postures?ids=abc"), token, nil)
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid posture ID")
	})
}
