package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/adjquiz/internal/adjquiz"
	"github.com/playperu/adjquiz/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type sessionPath struct {
	ID string `path:"id"`
}

type answerInput struct {
	sessionPath
	AnswerRequest
}

type hintInput struct {
	sessionPath
	HintRequest
}

type languageInput struct {
	sessionPath
	LanguageRequest
}

type grammarPath struct {
	Case string `path:"case"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Adjective Quiz API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the German adjective declension quiz.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the database and the question bank source.")
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/sessions
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	postSession.SetSummary("Start a session")
	postSession.SetDescription("Loads a fresh question bank and starts a round. The language defaults to the saved preference, then Accept-Language.")
	postSession.AddReqStructure(CreateSessionRequest{})
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	postSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postSession)

	// GET /api/sessions/{id}
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}")
	getSession.SetSummary("Get session")
	getSession.SetDescription("Returns the session phase, language and rendered round.")
	getSession.AddReqStructure(sessionPath{})
	getSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSession)

	// POST /api/sessions/{id}/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/answer")
	postAnswer.SetSummary("Answer a question")
	postAnswer.SetDescription("Records the first answer to a question. Later answers report applied=false.")
	postAnswer.AddReqStructure(answerInput{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postAnswer)

	// POST /api/sessions/{id}/hint
	postHint, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/hint")
	postHint.SetSummary("Request a hint")
	postHint.SetDescription("Discloses the next hint level: gender, then case with grammar rules, then a translation.")
	postHint.AddReqStructure(hintInput{})
	postHint.AddRespStructure(HintResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postHint.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postHint.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postHint)

	// POST /api/sessions/{id}/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/reset")
	postReset.SetSummary("Reset the round")
	postReset.SetDescription("Refetches the question bank and starts a new round.")
	postReset.AddReqStructure(sessionPath{})
	postReset.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postReset.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusAccepted))
	postReset.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	postReset.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postReset)

	// PUT /api/sessions/{id}/language
	putLanguage, _ := r.NewOperationContext(http.MethodPut, "/api/sessions/{id}/language")
	putLanguage.SetSummary("Change language")
	putLanguage.SetDescription("Switches the translation language and saves it for the visitor.")
	putLanguage.AddReqStructure(languageInput{})
	putLanguage.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putLanguage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putLanguage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putLanguage)

	// GET /api/sessions/{id}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of session updates, starting with a snapshot.")
	getEvents.AddReqStructure(sessionPath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/sessions/{id}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/ws")
	getWS.SetSummary("WebSocket")
	getWS.SetDescription("Accepts choice, hint, reset and language commands and streams session events.")
	getWS.AddReqStructure(sessionPath{})
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// GET /api/languages
	getLanguages, _ := r.NewOperationContext(http.MethodGet, "/api/languages")
	getLanguages.SetSummary("Supported languages")
	getLanguages.SetDescription("Lists translation languages and the visitor's resolved preference.")
	getLanguages.AddRespStructure(LanguagesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getLanguages)

	// GET /api/grammar
	listGrammar, _ := r.NewOperationContext(http.MethodGet, "/api/grammar")
	listGrammar.SetSummary("Grammar cases")
	listGrammar.SetDescription("Lists the grammatical cases with reference content.")
	listGrammar.AddRespStructure(GrammarCasesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listGrammar)

	// GET /api/grammar/{case}
	getGrammar, _ := r.NewOperationContext(http.MethodGet, "/api/grammar/{case}")
	getGrammar.SetSummary("Grammar reference")
	getGrammar.SetDescription("Returns the ending table for a grammatical case.")
	getGrammar.AddReqStructure(grammarPath{})
	getGrammar.AddRespStructure(adjquiz.Reference{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getGrammar)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
