package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/client/services"
	"github.com/shopspring/decimal"
)

// UserMessage turns any error into one line for the user. Purchase, top-up
// and edit failures stay deliberately coarse; the cause is in the log.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *client.ValidationError
	switch {
	case errors.Is(err, client.ErrActionPending):
		return "Another action is still running, please wait."
	case errors.Is(err, client.ErrNotLoggedIn):
		return "Please log in first."
	case errors.As(err, &ve):
		return "Invalid input: " + ve.Error() + "."
	case errors.Is(err, services.ErrNoChanges):
		return "Nothing to update."
	case errors.Is(err, services.ErrArtworkUnavailable):
		return "This artwork has already been sold."
	case errors.Is(err, services.ErrArtworkNotFound):
		return "There is no artwork with that id."
	case errors.Is(err, services.ErrPurchaseFailed):
		return "The purchase could not be completed. Check your balance and try again."
	case errors.Is(err, services.ErrTopupFailed):
		return "The top-up could not be completed."
	case errors.Is(err, services.ErrEditFailed):
		return "Your profile could not be updated. Check your password."
	case errors.Is(err, services.ErrLoginFailed):
		if errors.Is(err, client.ErrUnavailable) {
			return "Server unavailable. Try again later."
		}
		return "Invalid credentials."
	case errors.Is(err, services.ErrRegisterFailed):
		if msg := serverMessage(err); msg != "" {
			return "Registration failed: " + msg
		}
		return "Registration failed."
	case errors.Is(err, services.ErrLoadFailed):
		return "Could not load artworks. Type 'gallery' to retry."
	case errors.Is(err, services.ErrProfileFailed):
		return "Could not load your profile."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable. Try again later."
	default:
		return "Something went wrong: " + err.Error()
	}
}

// photoWarning explains why a profile photo was skipped.
func photoWarning(err error) string {
	reason := "the upload failed"
	var ve *client.ValidationError
	if errors.As(err, &ve) {
		reason = ve.Error()
	}
	return "Profile photo was not saved (" + reason + "); the rest went through."
}

// serverMessage extracts the backend's explanation from an HTTP error
// body, if it is one of the JSON shapes the API uses.
func serverMessage(err error) string {
	var he *client.HTTPError
	if !errors.As(err, &he) || he.Body == "" {
		return ""
	}
	if he.StatusCode >= http.StatusInternalServerError {
		return ""
	}
	var body struct {
		Error string `json:"error"`
		Msg   string `json:"msg"`
	}
	if json.Unmarshal([]byte(he.Body), &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		return body.Msg
	}
	return strings.TrimSpace(he.Body)
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
