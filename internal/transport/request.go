package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/agentstation/goseed/pkg/constants"
	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/logging"
	"github.com/agentstation/goseed/pkg/resources"
)

// resourceURL builds {base}/api/v3/{kind}/[{id}/][suffix]?organization_id={org}.
// Trailing slashes matter to the service.
func (c *Client) resourceURL(kind resources.Kind, orgID, id int, suffix string, query url.Values) *url.URL {
	u := *c.baseURL
	segments := []string{u.Path, constants.APIPrefix, kind.Name}
	if id > 0 {
		segments = append(segments, strconv.Itoa(id))
	}
	p := path.Join(segments...) + "/"
	if suffix != "" {
		p += strings.TrimLeft(suffix, "/")
	}
	u.Path = p

	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(constants.OrganizationQueryParam, strconv.Itoa(orgID))
	u.RawQuery = q.Encode()
	return &u
}

// errorBody is the shape of the service's error responses.
type errorBody struct {
	Status  string `json:"status"`
	Message any    `json:"message"`
	Detail  string `json:"detail"`
}

// DecodeResponse decodes a JSON response into the target structure.
// Any 2xx status is a success; a nil target discards the body.
func DecodeResponse(resp *http.Response, endpoint string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Default().Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			Service:    constants.ServiceName,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    errorMessage(body, resp.Status),
		}
	}

	if target == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}
	return nil
}

// errorMessage extracts a readable message from an error response body.
func errorMessage(body []byte, status string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch m := eb.Message.(type) {
		case string:
			if m != "" {
				return m
			}
		case nil:
		default:
			return fmt.Sprint(m)
		}
		if eb.Detail != "" {
			return eb.Detail
		}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed
	}
	return status
}
