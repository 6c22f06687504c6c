package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votehub/api/internal/core/domain"
)

// TestNomineeFlow covers register -> duplicate conflict -> contested
// ballot conflict -> approval -> repeated approval conflict.
func TestNomineeFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := app.createUserAndToken(t, "admin")
	nomineeID, nomineeToken := app.createUserAndToken(t, "voter")
	_, rivalToken := app.createUserAndToken(t, "voter")
	now := time.Now()

	event := app.createEvent(t, adminToken, "Single",
		now.Add(time.Hour), now.Add(2*time.Hour), now.Add(3*time.Hour))
	nomineesPath := "/api/events/" + event.ID.String() + "/nominees"
	ballot := event.AvailableBallots[0]

	resp := app.do(t, http.MethodPost, nomineesPath, nomineeToken, map[string]any{
		"ballot":      ballot,
		"description": "experienced candidate",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reg domain.NomineeRegistration
	decodeBody(t, resp, &reg)
	assert.Equal(t, nomineeID, reg.UserID)
	assert.Equal(t, ballot, reg.SelectedBallot)
	assert.False(t, reg.Approved)

	// Same user again, even with the other ballot.
	resp = app.do(t, http.MethodPost, nomineesPath, nomineeToken, map[string]any{
		"ballot": event.AvailableBallots[1],
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Another user grabbing the already-claimed ballot.
	resp = app.do(t, http.MethodPost, nomineesPath, rivalToken, map[string]any{
		"ballot": ballot,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Pending list has the nominee, approved list does not.
	resp = app.do(t, http.MethodGet, nomineesPath+"?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Nominees []domain.NomineeDetail `json:"nominees"`
		Count    int                    `json:"count"`
	}
	decodeBody(t, resp, &listing)
	require.Equal(t, 1, listing.Count)
	assert.Equal(t, nomineeID, listing.Nominees[0].UserID)

	resp = app.do(t, http.MethodGet, nomineesPath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listing)
	assert.Equal(t, 0, listing.Count)

	// Approval.
	approvalPath := nomineesPath + "/" + nomineeID.String() + "/approval"
	resp = app.do(t, http.MethodPost, approvalPath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var approved domain.NomineeRegistration
	decodeBody(t, resp, &approved)
	assert.True(t, approved.Approved)

	resp = app.do(t, http.MethodGet, nomineesPath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listing)
	require.Equal(t, 1, listing.Count)
	assert.True(t, listing.Nominees[0].Approved)

	// Approving twice conflicts.
	resp = app.do(t, http.MethodPost, approvalPath, adminToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Approval is admin-only.
	resp = app.do(t, http.MethodPost, approvalPath, rivalToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegistrationDeadline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := app.createUserAndToken(t, "admin")
	_, userToken := app.createUserAndToken(t, "voter")
	now := time.Now()

	event := app.createEvent(t, adminToken, "Single",
		now.Add(time.Hour), now.Add(2*time.Hour), now.Add(3*time.Hour))
	app.shiftWindow(t, event.ID, now.Add(-time.Minute), now.Add(time.Hour), now.Add(2*time.Hour))

	resp := app.do(t, http.MethodPost, "/api/events/"+event.ID.String()+"/nominees", userToken, map[string]any{
		"ballot": event.AvailableBallots[0],
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = app.do(t, http.MethodPost, "/api/events/"+event.ID.String()+"/voters", userToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVoterRegistrationAndParticipation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := app.createUserAndToken(t, "admin")
	now := time.Now()

	event := app.createEvent(t, adminToken, "Single",
		now.Add(time.Hour), now.Add(2*time.Hour), now.Add(3*time.Hour))
	votersPath := "/api/events/" + event.ID.String() + "/voters"

	tokens := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		_, token := app.createUserAndToken(t, "voter")
		tokens = append(tokens, token)

		resp := app.do(t, http.MethodPost, votersPath, token, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	// Double registration conflicts.
	resp := app.do(t, http.MethodPost, votersPath, tokens[0], nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = app.do(t, http.MethodGet, votersPath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Voters []domain.VoterDetail `json:"voters"`
		Count  int                  `json:"count"`
	}
	decodeBody(t, resp, &listing)
	assert.Equal(t, 2, listing.Count)

	resp = app.do(t, http.MethodGet, "/api/events/"+event.ID.String()+"/participation", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var participation domain.Participation
	decodeBody(t, resp, &participation)
	assert.Empty(t, participation.Voted)
	assert.Len(t, participation.NotVoted, 2)
	assert.Zero(t, participation.Rate)
}

func TestMyStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := app.createUserAndToken(t, "admin")
	_, userToken := app.createUserAndToken(t, "voter")
	now := time.Now()

	event := app.createEvent(t, adminToken, "Single",
		now.Add(time.Hour), now.Add(2*time.Hour), now.Add(3*time.Hour))
	statusPath := "/api/events/" + event.ID.String() + "/my-status"

	var status struct {
		VoterRegistered   bool `json:"voter_registered"`
		HasVoted          bool `json:"has_voted"`
		NomineeRegistered bool `json:"nominee_registered"`
		NomineeApproved   bool `json:"nominee_approved"`
	}

	resp := app.do(t, http.MethodGet, statusPath, userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.False(t, status.VoterRegistered)
	assert.False(t, status.NomineeRegistered)

	resp = app.do(t, http.MethodPost, "/api/events/"+event.ID.String()+"/voters", userToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodPost, "/api/events/"+event.ID.String()+"/nominees", userToken, map[string]any{
		"ballot": event.AvailableBallots[0],
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodGet, statusPath, userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.True(t, status.VoterRegistered)
	assert.False(t, status.HasVoted)
	assert.True(t, status.NomineeRegistered)
	assert.False(t, status.NomineeApproved)
}

func TestRegistrationOnUnknownEvent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, userToken := app.createUserAndToken(t, "voter")

	resp := app.do(t, http.MethodPost, "/api/events/"+uuid.NewString()+"/voters", userToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
