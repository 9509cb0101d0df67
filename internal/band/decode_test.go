package band

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
)

func makeResponse(status int, contentType, body string) *http.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponse_SuccessReturnsBodyUnchanged(t *testing.T) {
	body := `{"result_code":1,"result_data":{"items":[{"post_key":"p1"}],"extra":[1,2,3]}}`
	env, err := ParseResponse(makeResponse(200, "application/json; charset=utf-8", body))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if env.ResultCode != 1 {
		t.Errorf("expected result_code 1, got %d", env.ResultCode)
	}
	// result_data must pass through undisturbed.
	want := `{"items":[{"post_key":"p1"}],"extra":[1,2,3]}`
	if string(env.ResultData) != want {
		t.Errorf("result_data altered:\n got:  %s\n want: %s", env.ResultData, want)
	}
}

func TestParseResponse_BusinessFailureIsStillInspectable(t *testing.T) {
	// A 200 envelope with a failing result_code is decoded, not rejected;
	// the caller decides what to do with it.
	body := `{"result_code":60301,"result_data":{"message":"Invalid parameters"}}`
	env, err := ParseResponse(makeResponse(200, "application/json", body))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if env.ResultCode != 60301 {
		t.Errorf("expected result_code 60301, got %d", env.ResultCode)
	}
}

func TestParseResponse_NonJSONContentType(t *testing.T) {
	_, err := ParseResponse(makeResponse(200, "text/html", "<html></html>"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if !strings.Contains(apiErr.Error(), "invalid content type") {
		t.Errorf("unexpected message: %s", apiErr.Error())
	}
}

func TestParseResponse_ErrorStatus(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantCode    int
		contains    []string
	}{
		{
			name:        "full error body",
			contentType: "application/json",
			body: `{"result_code":60401,"result_data":{"message":"Invalid access token",` +
				`"detail":{"error":"invalid_grant","description":"token revoked"}}}`,
			wantCode: 60401,
			contains: []string{"60401", "Invalid access token", "invalid_grant", "token revoked"},
		},
		{
			name:        "empty body defaults",
			contentType: "application/json",
			body:        "",
			wantCode:    -1,
			contains:    []string{"-1"},
		},
		{
			name:        "malformed body degrades gracefully",
			contentType: "application/json",
			body:        `{"result_code": oops`,
			wantCode:    -1,
			contains:    []string{"-1"},
		},
		{
			name:        "non-JSON error body is not decoded",
			contentType: "text/plain",
			body:        "internal server error",
			wantCode:    -1,
			contains:    []string{"-1"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseResponse(makeResponse(500, test.contentType, test.body))

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T (%v)", err, err)
			}
			if apiErr.ResultCode != test.wantCode {
				t.Errorf("expected result code %d, got %d", test.wantCode, apiErr.ResultCode)
			}
			for _, fragment := range test.contains {
				if !strings.Contains(apiErr.Error(), fragment) {
					t.Errorf("error message %q missing %q", apiErr.Error(), fragment)
				}
			}
		})
	}
}

func TestParseResponse_MalformedSuccessEnvelope(t *testing.T) {
	_, err := ParseResponse(makeResponse(200, "application/json", `not json at all`))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
}

func TestAPIError_MessageAlwaysCarriesResultCode(t *testing.T) {
	for _, code := range []int{-1, 0, 1, 60000} {
		apiErr := &APIError{ResultCode: code}
		if !strings.Contains(apiErr.Error(), strconv.Itoa(code)) {
			t.Errorf("error %q missing result code %d", apiErr.Error(), code)
		}
	}
}
