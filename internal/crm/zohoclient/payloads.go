package zohoclient

import "encoding/json"

// LeadRecord is the CRM lead derived from one inbound message.
type LeadRecord struct {
	LastName    string
	Phone       string
	Description string
	MatterType  string
	Urgency     string
}

// AuthFailedPayload is returned in place of a CRM response when no access
// token could be obtained. The shape matches the CRM error convention so the
// orchestrator can pass it through unmodified.
var AuthFailedPayload = json.RawMessage(`{"error":"zoho_auth_failed"}`)

// RequestFailedPayload stands in for the CRM response when the request never
// produced a decodable body (network failure, timeout).
var RequestFailedPayload = json.RawMessage(`{"error":"zoho_request_failed"}`)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type leadPayload struct {
	Data    []leadData `json:"data"`
	Trigger []string   `json:"trigger"`
}

type leadData struct {
	LastName    string `json:"Last_Name"`
	Phone       string `json:"Phone"`
	Description string `json:"Description"`
	MatterType  string `json:"Matter_Type"`
	Urgency     string `json:"Urgency"`
}

type taskPayload struct {
	Data []taskData `json:"data"`
}

type taskData struct {
	Subject     string `json:"Subject"`
	Description string `json:"Description"`
	Status      string `json:"Status"`
	WhatID      string `json:"What_Id"`
}

// LeadIDFromResult extracts data[0].details.id from a lead-create response.
// Every missing level reports ok=false rather than panicking, so callers get
// an explicit "lead id unknown" branch.
func LeadIDFromResult(raw json.RawMessage) (string, bool) {
	var parsed struct {
		Data []struct {
			Details struct {
				ID string `json:"id"`
			} `json:"details"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false
	}
	if len(parsed.Data) == 0 {
		return "", false
	}
	id := parsed.Data[0].Details.ID
	if id == "" {
		return "", false
	}
	return id, true
}
