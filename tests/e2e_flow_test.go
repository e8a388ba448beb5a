package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/coachdesk/internal/config"
	"github.com/coachdesk/coachdesk/internal/server"
)

// TestGoldenPath walks the full trainer flow: build a template through the
// structural editor, assign it to clients, handle the conflict confirmation,
// and verify the materialized calendars.
func TestGoldenPath(t *testing.T) {
	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cfg := &config.Config{}
	cfg.Server.IdempotencyTTL = 10 * time.Minute

	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
	})

	request := func(method, path string, body interface{}, headers ...[2]string) *http.Response {
		var bodyReader io.Reader
		if body != nil {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(jsonBytes)
		}
		req, _ := http.NewRequest(method, path, bodyReader)
		req.Header.Set("Content-Type", "application/json")
		for _, h := range headers {
			req.Header.Set(h[0], h[1])
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	decode := func(resp *http.Response) map[string]interface{} {
		var data map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		return data
	}

	decodeList := func(resp *http.Response) []map[string]interface{} {
		var data []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		return data
	}

	// ==========================================
	// STEP 1: Exercise catalog
	// ==========================================
	resp := request("POST", "/v1/exercises", map[string]interface{}{
		"name":          "Barbell Squat",
		"muscle_groups": []string{"Quads", "Glutes"},
		"equipment":     "Barbell",
		"category":      "Compound",
	})
	require.Equal(t, 201, resp.StatusCode)
	squatID := decode(resp)["id"].(string)
	require.NotEmpty(t, squatID)

	// Duplicate name is rejected
	resp = request("POST", "/v1/exercises", map[string]interface{}{"name": "Barbell Squat"})
	assert.Equal(t, 409, resp.StatusCode)

	fmt.Println("✓ Exercise catalog ready")

	// ==========================================
	// STEP 2: Build the template through the editor
	// ==========================================
	resp = request("POST", "/v1/templates", map[string]interface{}{
		"name":          "Strength Block",
		"description":   "2x3 strength base",
		"days_per_week": 3,
	})
	require.Equal(t, 201, resp.StatusCode)
	tmplData := decode(resp)
	tmplID := tmplData["id"].(string)
	require.NotEmpty(t, tmplID)
	require.Len(t, tmplData["weeks"].([]interface{}), 1)

	// Day 3 of week 1 becomes a rest day
	resp = request("PATCH", "/v1/templates/"+tmplID+"/days/3/rest", nil)
	require.Equal(t, 200, resp.StatusCode)

	// Main section on day 1
	resp = request("POST", "/v1/templates/"+tmplID+"/days/1/sections", map[string]interface{}{
		"type":   "main",
		"format": "straight-sets",
		"name":   "Main Work",
	})
	require.Equal(t, 201, resp.StatusCode)
	tmplData = decode(resp)
	week1 := tmplData["weeks"].([]interface{})[0].(map[string]interface{})
	day1 := week1["days"].([]interface{})[0].(map[string]interface{})
	sectionID := day1["sections"].([]interface{})[0].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, sectionID)

	// Prescription: defaults fill in what the body omits
	resp = request("POST", "/v1/templates/"+tmplID+"/days/1/sections/"+sectionID+"/exercises", map[string]interface{}{
		"exercise_id": squatID,
		"sets":        5,
		"reps":        "5",
	})
	require.Equal(t, 201, resp.StatusCode)

	// Unknown exercise id is rejected
	resp = request("POST", "/v1/templates/"+tmplID+"/days/1/sections/"+sectionID+"/exercises", map[string]interface{}{
		"exercise_id": "000000000000000000000000",
	})
	assert.Equal(t, 404, resp.StatusCode)

	// Second week, renumbered 4..6
	resp = request("POST", "/v1/templates/"+tmplID+"/weeks", nil)
	require.Equal(t, 200, resp.StatusCode)
	tmplData = decode(resp)
	weeks := tmplData["weeks"].([]interface{})
	require.Len(t, weeks, 2)
	week2 := weeks[1].(map[string]interface{})
	days2 := week2["days"].([]interface{})
	require.Len(t, days2, 3)
	assert.EqualValues(t, 4, days2[0].(map[string]interface{})["day_number"])
	assert.EqualValues(t, 6, days2[2].(map[string]interface{})["day_number"])

	fmt.Println("✓ Template built:", tmplID)

	// ==========================================
	// STEP 3: Clients
	// ==========================================
	resp = request("POST", "/v1/clients", map[string]interface{}{
		"name": "Ana", "trainer_id": "t1", "goal": "Strength",
	})
	require.Equal(t, 201, resp.StatusCode)
	anaID := decode(resp)["id"].(string)

	resp = request("POST", "/v1/clients", map[string]interface{}{
		"name": "Ben", "trainer_id": "t1", "goal": "Fat loss",
	})
	require.Equal(t, 201, resp.StatusCode)
	benID := decode(resp)["id"].(string)

	// ==========================================
	// STEP 4: First assignment gives Ben an active program
	// ==========================================
	resp = request("POST", "/v1/templates/"+tmplID+"/assign", map[string]interface{}{
		"client_ids": []string{benID},
		"trainer_id": "t1",
		"start_date": "2024-05-06",
	})
	require.Equal(t, 201, resp.StatusCode)
	result := decode(resp)
	assert.EqualValues(t, 1, result["clients_assigned"])
	assert.EqualValues(t, 6, result["sessions_created"])

	// ==========================================
	// STEP 5: Conflict preview for the mixed batch
	// ==========================================
	resp = request("POST", "/v1/assignments/conflicts", map[string]interface{}{
		"client_ids": []string{anaID, benID},
	})
	require.Equal(t, 200, resp.StatusCode)
	conflicts := decode(resp)["conflicts"].([]interface{})
	require.Len(t, conflicts, 1)
	conflict := conflicts[0].(map[string]interface{})
	assert.Equal(t, benID, conflict["client_id"])
	assert.Equal(t, "Ben", conflict["client_name"])
	assert.Equal(t, "Strength Block", conflict["current_program_name"])
	assert.EqualValues(t, 6, conflict["remaining_scheduled_sessions"])

	// ==========================================
	// STEP 6: Unconfirmed assignment is gated, nothing created
	// ==========================================
	resp = request("POST", "/v1/templates/"+tmplID+"/assign", map[string]interface{}{
		"client_ids": []string{anaID, benID},
		"trainer_id": "t1",
		"start_date": "2024-06-03",
	})
	require.Equal(t, 200, resp.StatusCode)
	result = decode(resp)
	assert.Equal(t, true, result["requires_confirmation"])
	require.Len(t, result["conflicts"].([]interface{}), 1)

	resp = request("GET", "/v1/sessions?client_id="+anaID, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, decodeList(resp))

	fmt.Println("✓ Conflict gate held")

	// ==========================================
	// STEP 7: Confirmed assignment replaces and materializes
	// ==========================================
	resp = request("POST", "/v1/templates/"+tmplID+"/assign", map[string]interface{}{
		"client_ids": []string{anaID, benID},
		"trainer_id": "t1",
		"start_date": "2024-06-03",
		"start_time": "09:00",
		"end_time":   "10:00",
		"confirmed":  true,
	}, [2]string{"X-Correlation-ID", "assign-batch-1"})
	require.Equal(t, 201, resp.StatusCode)
	result = decode(resp)
	assert.EqualValues(t, 2, result["clients_assigned"])
	assert.EqualValues(t, 12, result["sessions_created"])

	resp = request("GET", "/v1/sessions?client_id="+anaID, nil)
	require.Equal(t, 200, resp.StatusCode)
	anaSessions := decodeList(resp)
	require.Len(t, anaSessions, 6)

	wantDates := []string{"2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07", "2024-06-08"}
	for i, s := range anaSessions {
		assert.Equal(t, wantDates[i], s["date"])
		assert.Equal(t, "scheduled", s["status"])
	}
	// Day 1 carries the prescription, day 3 is the materialized rest day
	assert.Equal(t, "09:00", anaSessions[0]["time"])
	day1Exercises := anaSessions[0]["exercises"].([]interface{})
	require.Len(t, day1Exercises, 1)
	prescription := day1Exercises[0].(map[string]interface{})
	assert.Equal(t, squatID, prescription["exercise_id"])
	assert.EqualValues(t, 5, prescription["sets"])
	assert.Equal(t, "5", prescription["reps"])
	assert.EqualValues(t, 60, prescription["rest_seconds"])

	restSession := anaSessions[2]
	assert.Empty(t, restSession["exercises"])
	assert.Equal(t, "Rest day", restSession["notes"])

	// Ben's old calendar is gone, replaced by the new start date
	resp = request("GET", "/v1/sessions?client_id="+benID, nil)
	benSessions := decodeList(resp)
	require.Len(t, benSessions, 6)
	assert.Equal(t, "2024-06-03", benSessions[0]["date"])

	fmt.Println("✓ Batch assigned and materialized")

	// ==========================================
	// STEP 8: Editing the template never rewrites materialized sessions
	// ==========================================
	resp = request("POST", "/v1/templates/"+tmplID+"/days/1/sections/"+sectionID+"/exercises", map[string]interface{}{
		"exercise_id": squatID,
		"reps":        "12",
	})
	require.Equal(t, 201, resp.StatusCode)

	resp = request("GET", "/v1/sessions?client_id="+anaID, nil)
	anaSessions = decodeList(resp)
	assert.Len(t, anaSessions[0]["exercises"].([]interface{}), 1)

	// ==========================================
	// STEP 9: Retried batch replays instead of re-running
	// ==========================================
	time.Sleep(200 * time.Millisecond) // response caching is async
	resp = request("POST", "/v1/templates/"+tmplID+"/assign", map[string]interface{}{
		"client_ids": []string{anaID, benID},
		"trainer_id": "t1",
		"start_date": "2024-06-03",
		"start_time": "09:00",
		"end_time":   "10:00",
		"confirmed":  true,
	}, [2]string{"X-Correlation-ID", "assign-batch-1"})
	assert.Equal(t, "true", resp.Header.Get("X-Idempotent-Replay"))

	resp = request("GET", "/v1/sessions?client_id="+anaID, nil)
	assert.Len(t, decodeList(resp), 6)

	fmt.Println("✓ Idempotent replay")

	// ==========================================
	// STEP 10: Progress and dashboard
	// ==========================================
	resp = request("GET", "/v1/clients/"+anaID+"/instances?active=true", nil)
	require.Equal(t, 200, resp.StatusCode)
	instanceID := decodeList(resp)[0]["id"].(string)

	resp = request("POST", "/v1/instances/"+instanceID+"/complete-day", map[string]interface{}{
		"day_number": 1,
	})
	require.Equal(t, 200, resp.StatusCode)

	resp = request("GET", "/v1/instances/"+instanceID, nil)
	instance := decode(resp)
	assert.EqualValues(t, 2, instance["current_day"])
	assert.EqualValues(t, 1, instance["current_week"])

	resp = request("GET", "/v1/dashboard/summary?trainer_id=t1", nil)
	require.Equal(t, 200, resp.StatusCode)
	summary := decode(resp)
	assert.EqualValues(t, 2, summary["total_clients"])
	assert.EqualValues(t, 2, summary["active_programs"])

	// ==========================================
	// STEP 11: One-off session outside any program
	// ==========================================
	resp = request("POST", "/v1/sessions", map[string]interface{}{
		"client_id": anaID,
		"date":      "2024-07-01",
		"notes":     "Mobility check-in",
	})
	require.Equal(t, 201, resp.StatusCode)
	adhoc := decode(resp)
	assert.Equal(t, "scheduled", adhoc["status"])
	assert.Equal(t, "10:00", adhoc["time"])
	assert.Equal(t, "11:00", adhoc["end_time"])
	_, hasInstance := adhoc["program_instance_id"]
	assert.False(t, hasInstance)

	resp = request("GET", "/v1/sessions?client_id="+anaID+"&from=2024-07-01&to=2024-07-01", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, decodeList(resp), 1)

	// Unknown client is rejected
	resp = request("POST", "/v1/sessions", map[string]interface{}{
		"client_id": "000000000000000000000000",
		"date":      "2024-07-01",
	})
	assert.Equal(t, 404, resp.StatusCode)

	fmt.Println("✓ Standalone session scheduled")

	fmt.Println("✓ Golden path complete")
}
