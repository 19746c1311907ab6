package durcalc

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"              // Request IDs.
	cache "github.com/patrickmn/go-cache" // In-memory cache with expiry.
	"github.com/pkg/errors"               // Wrap errors with stacktrace.
	"github.com/tidwall/gjson"            // Dynamic JSON parsing.
	"go.uber.org/zap"                     // Logging.

	"github.com/mintel/timespan/internal/pkg/metrics"
	"github.com/mintel/timespan/pkg/ctxlog"
	"github.com/mintel/timespan/pkg/duration"
)

// RequestIDHeader carries the ID of a request. A client may set it, and
// the server echoes it, or a new one, on every response.
const RequestIDHeader = "X-Request-Id"

// Largest accepted POST body.
const maxBodyBytes = 1 << 16

var errBadRequest = errors.New("bad request")

// Server serves the durcalc HTTP API:
//
//	GET  /v1/eval?op=add&mode=checked&d=1h&d=30m
//	GET  /v1/eval?op=mul&d=1h&n=3
//	POST /v1/eval {"op":"add","mode":"saturating","durations":["1h",{"seconds":1800}]}
//	GET  /v1/parse?d=PT1H30M
type Server struct {
	logger *zap.Logger
	inst   *Instrumentation
	cache  *cache.Cache
}

// NewServer returns a new Server. Parsed duration operands are cached
// for ttl.
func NewServer(logger *zap.Logger, inst *Instrumentation, ttl duration.Duration) (*Server, error) {
	exp, err := ttl.ToTimeDuration()
	if err != nil || !ttl.IsPositive() {
		return nil, errors.Errorf("parse cache TTL must be positive and under 292 years, got %s", ttl)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger: logger,
		inst:   inst,
		cache:  cache.New(exp, 2*exp),
	}, nil
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/eval", s.handleEval)
	mux.HandleFunc("/v1/parse", s.handleParse)
	return s.withRequestID(mux)
}

func (s *Server) withRequestID(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := ctxlog.WithLogger(r.Context(), s.logger)
		ctx = ctxlog.WithFields(ctx,
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

type evalResponse struct {
	Expr     string             `json:"expr"`
	Result   string             `json:"result"`
	Duration *duration.Duration `json:"duration,omitempty"`
	ISO      string             `json:"iso,omitempty"`
	Ratio    *float64           `json:"ratio,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.L(r.Context())

	var (
		e   Expr
		err error
	)
	switch r.Method {
	case http.MethodGet:
		e, err = s.exprFromQuery(r)
	case http.MethodPost:
		e, err = s.exprFromBody(r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, logger, http.StatusMethodNotAllowed, errors.Errorf("method %s not allowed", r.Method))
		return
	}

	timer := metrics.NewVecTimer(s.inst.EvalDuration)
	var res Result
	if err == nil {
		res, err = NewCalculator(logger).Eval(e)
	}
	took := timer.ObserveErr(err)
	s.countEval(e, err)

	if err != nil {
		writeError(w, logger, statusOf(err), err)
		return
	}
	logger.Debug("served evaluation", zap.Stringer("expr", e), zap.Stringer("took", took))

	resp := evalResponse{Expr: e.String(), Result: res.String(), Ratio: res.Ratio}
	if res.Ratio == nil {
		resp.Duration = &res.Duration
		resp.ISO = res.Duration.FormatISO8601()
	}
	writeJSON(w, logger, http.StatusOK, resp)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.L(r.Context())
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, logger, http.StatusMethodNotAllowed, errors.Errorf("method %s not allowed", r.Method))
		return
	}
	d, err := s.parse(r.URL.Query().Get("d"))
	if err != nil {
		writeError(w, logger, statusOf(err), err)
		return
	}
	writeJSON(w, logger, http.StatusOK, Summarize(d))
}

// countEval increments the evaluation counter. Unknown operations and
// modes share one label value.
func (s *Server) countEval(e Expr, err error) {
	op, mode := "unknown", "unknown"
	if _, _, ok := e.Op.Arity(); ok {
		op = string(e.Op)
	}
	if _, perr := ParseMode(string(e.Mode)); perr == nil {
		mode = string(e.Mode)
	}
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	s.inst.Evaluations.WithLabelValues(op, mode, status).Inc()
}

// parse is duration.Parse with a cache in front.
func (s *Server) parse(str string) (duration.Duration, error) {
	if v, ok := s.cache.Get(str); ok {
		s.inst.ParseCacheHits.Inc()
		return v.(duration.Duration), nil
	}
	s.inst.ParseCacheMisses.Inc()
	d, err := duration.Parse(str)
	if err != nil {
		return duration.Zero, err
	}
	s.cache.SetDefault(str, d)
	return d, nil
}

func (s *Server) exprFromQuery(r *http.Request) (Expr, error) {
	q := r.URL.Query()
	e := Expr{Op: Op(q.Get("op")), Mode: Mode(q.Get("mode"))}
	if e.Mode == "" {
		e.Mode = Checked
	}
	for _, str := range q["d"] {
		d, err := s.parse(str)
		if err != nil {
			return e, err
		}
		e.Durations = append(e.Durations, d)
	}
	if n := q.Get("n"); n != "" {
		f, err := strconv.ParseInt(n, 10, 32)
		if err != nil {
			return e, errors.Wrapf(errBadRequest, "invalid factor %q", n)
		}
		e.Factor = int32(f)
	}
	return e, nil
}

func (s *Server) exprFromBody(r *http.Request) (Expr, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return Expr{}, errors.Wrap(err, "error reading request body")
	}
	if !gjson.ValidBytes(body) {
		return Expr{}, errors.Wrap(errBadRequest, "request body is not valid JSON")
	}

	e := Expr{
		Op:   Op(gjson.GetBytes(body, "op").String()),
		Mode: Mode(gjson.GetBytes(body, "mode").String()),
	}
	if e.Mode == "" {
		e.Mode = Checked
	}

	operands := gjson.GetBytes(body, "durations")
	if operands.Exists() && !operands.IsArray() {
		return e, errors.Wrap(errBadRequest, "durations must be an array")
	}
	for _, item := range operands.Array() {
		var d duration.Duration
		if item.Type == gjson.String {
			d, err = s.parse(item.String())
		} else {
			err = d.UnmarshalJSON([]byte(item.Raw))
		}
		if err != nil {
			return e, err
		}
		e.Durations = append(e.Durations, d)
	}

	if n := gjson.GetBytes(body, "factor"); n.Exists() {
		f, err := strconv.ParseInt(n.Raw, 10, 32)
		if n.Type != gjson.Number || err != nil {
			return e, errors.Wrapf(errBadRequest, "invalid factor %s", n.Raw)
		}
		e.Factor = int32(f)
	}
	return e, nil
}

// statusOf maps an evaluation error to an HTTP status code.
func statusOf(err error) int {
	if errors.Is(err, duration.ErrOverflow) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func writeError(w http.ResponseWriter, logger *zap.Logger, code int, err error) {
	logger.Debug("request failed", zap.Int("status_code", code), zap.Error(err))
	writeJSON(w, logger, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("error writing response", zap.Error(err))
	}
}
