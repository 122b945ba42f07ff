package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// WebServer serves the questionnaire UI and the JSON API
type WebServer struct {
	estimator *Estimator
	addr      string
	outputDir string
	logger    *zap.Logger
	served    *atomic.Int64
	router    *gin.Engine

	shutdownTimeout time.Duration
}

// NewWebServer creates a new web server instance
func NewWebServer(estimator *Estimator, settings *Settings, logger *zap.Logger) *WebServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	ws := &WebServer{
		estimator: estimator,
		addr:      settings.Server.Addr,
		outputDir: settings.Report.OutputDir,
		logger:    logger,
		served:    atomic.NewInt64(0),

		shutdownTimeout: 5 * time.Second,
	}
	ws.router = ws.setupRoutes()
	return ws
}

// EstimateRequest is the JSON body of /api/estimate and /api/export-*
type EstimateRequest struct {
	Age     int               `json:"age" binding:"required,min=1,max=120"`
	Gender  string            `json:"gender" binding:"required,oneof=male female"`
	Answers map[string]string `json:"answers" binding:"required"`
}

// Profile converts the request into a profile
func (r EstimateRequest) Profile() *Profile {
	return &Profile{Age: r.Age, Gender: Gender(r.Gender), Answers: r.Answers}
}

// ErrorDetail names one rejected field
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIResponse is the envelope of every API reply
type APIResponse struct {
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Details  []ErrorDetail `json:"details,omitempty"`
	Report   *Report       `json:"report,omitempty"`
	FilePath string        `json:"file_path,omitempty"`
}

// APIFactor describes one question for the UI
type APIFactor struct {
	*Factor
	CategoryName string `json:"category_name"`
}

// Router exposes the gin engine (used by tests and embedding)
func (ws *WebServer) Router() http.Handler {
	return ws.router
}

// Served returns the number of estimates computed since start
func (ws *WebServer) Served() int64 {
	return ws.served.Load()
}

func (ws *WebServer) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ws.requestLogger())

	r.GET("/health", ws.handleHealth)
	r.GET("/", ws.handleIndex)

	api := r.Group("/api")
	{
		api.GET("/factors", ws.handleFactors)
		api.GET("/profile/default", ws.handleDefaultProfile)
		api.POST("/estimate", ws.handleEstimate)
		api.POST("/export-pdf", ws.handleExportPDF)
		api.POST("/export-html", ws.handleExportHTML)
		api.POST("/what-if", ws.handleWhatIf)
	}

	return r
}

// requestLogger tags every request with an ID and logs it on completion
func (ws *WebServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if !validRequestID(requestID) {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		ws.logger.Debug("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

const maxRequestIDLen = 64

// validRequestID accepts caller IDs of up to 64 letters, digits, '-', '_' or '.'
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

// Start starts the web server and opens the browser. It blocks until the server stops.
func (ws *WebServer) Start() error {
	listener, url, err := ws.listen()
	if err != nil {
		return err
	}

	ws.logger.Info("starting web server", zap.String("addr", listener.Addr().String()))
	fmt.Printf("Opening %s in your browser...\n", url)

	go openBrowser(url)

	return http.Serve(listener, ws.router)
}

// StartForEmbedded starts the server and returns the URL and a cleanup function.
// Unlike Start(), this does NOT open the browser and does NOT block.
func (ws *WebServer) StartForEmbedded() (url string, cleanup func(), err error) {
	listener, url, err := ws.listen()
	if err != nil {
		return "", nil, err
	}

	ws.logger.Info("starting embedded web server", zap.String("addr", listener.Addr().String()))

	server := &http.Server{Handler: ws.router}

	go func() {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			ws.logger.Error("server error", zap.Error(err))
		}
	}()

	cleanup = func() {
		ctx, cancel := context.WithTimeout(context.Background(), ws.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			ws.logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}

	return url, cleanup, nil
}

// listen binds the address (":0" auto-assigns) and returns a browsable URL
func (ws *WebServer) listen() (net.Listener, string, error) {
	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		return nil, "", err
	}

	actualAddr := listener.Addr().String()
	url := fmt.Sprintf("http://%s", actualAddr)

	// If listening on all interfaces, use localhost for the URL
	if strings.HasPrefix(actualAddr, ":") || strings.HasPrefix(actualAddr, "0.0.0.0:") || strings.HasPrefix(actualAddr, "[::]:") {
		port := actualAddr[strings.LastIndex(actualAddr, ":")+1:]
		url = fmt.Sprintf("http://localhost:%s", port)
	}
	return listener, url, nil
}

func (ws *WebServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "lifespan-forecast",
		"estimates": ws.served.Load(),
	})
}

// handleIndex serves the main web UI
func (ws *WebServer) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(webUIHTML))
}

func (ws *WebServer) handleFactors(c *gin.Context) {
	factors := ws.estimator.Registry().GetAll()
	result := make([]APIFactor, len(factors))
	for i, f := range factors {
		result[i] = APIFactor{Factor: f, CategoryName: f.Category.Name()}
	}
	c.JSON(http.StatusOK, result)
}

func (ws *WebServer) handleDefaultProfile(c *gin.Context) {
	p, err := LoadDefaultProfile()
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ws *WebServer) handleEstimate(c *gin.Context) {
	report, ok := ws.estimate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Report: report})
}

// handleExportPDF computes the report and saves it as a PDF in the output directory
func (ws *WebServer) handleExportPDF(c *gin.Context) {
	report, ok := ws.estimate(c)
	if !ok {
		return
	}

	path, err := GeneratePDFReportInDir(report, ws.outputDir)
	if err != nil {
		ws.logger.Error("pdf export failed", zap.String("report_id", report.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	ws.logger.Info("pdf exported", zap.String("report_id", report.ID), zap.String("path", path))
	c.JSON(http.StatusOK, APIResponse{Success: true, Report: report, FilePath: path})
}

// handleExportHTML computes the report and saves it as a standalone HTML page
func (ws *WebServer) handleExportHTML(c *gin.Context) {
	report, ok := ws.estimate(c)
	if !ok {
		return
	}

	path, err := GenerateHTMLReportInDir(report, ws.outputDir)
	if err != nil {
		ws.logger.Error("html export failed", zap.String("report_id", report.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Report: report, FilePath: path})
}

// handleWhatIf returns the lifespan for every single-answer change
func (ws *WebServer) handleWhatIf(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	analysis, err := ws.estimator.WhatIf(req.Profile())
	if err != nil {
		if _, ok := AsValidationError(err); ok {
			badRequest(c, err)
			return
		}
		ws.logger.Error("what-if failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

// estimate binds the request and runs the estimator, writing the error reply itself on failure
func (ws *WebServer) estimate(c *gin.Context) (*Report, bool) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return nil, false
	}

	report, err := ws.estimator.Estimate(req.Profile())
	if err != nil {
		if _, ok := AsValidationError(err); ok {
			badRequest(c, err)
			return nil, false
		}
		ws.logger.Error("estimate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Error: err.Error()})
		return nil, false
	}

	ws.served.Inc()
	return report, true
}

// badRequest writes a 400 with per-field details when the error carries them
func badRequest(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]ErrorDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, ErrorDetail{Field: strings.ToLower(fe.Field()), Message: validationMessage(fe)})
		}
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "Validation failed", Details: details})
		return
	}

	var many ValidationErrors
	if errors.As(err, &many) {
		details := make([]ErrorDetail, 0, len(many))
		for _, ve := range many {
			details = append(details, ErrorDetail{Field: ve.Field, Message: ve.Message})
		}
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "Validation failed", Details: details})
		return
	}

	if ve, ok := AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Validation failed",
			Details: []ErrorDetail{{Field: ve.Field, Message: ve.Message}},
		})
		return
	}

	c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
}

// webUIHTML is the embedded questionnaire page
const webUIHTML = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>寿命预测器 Lifespan Forecast</title>
<style>
  :root { --primary: #2563eb; --success: #16a34a; --warning: #ea580c; --danger: #dc2626; --bg: #f8fafc; --text: #1e293b; --muted: #64748b; --border: #e2e8f0; }
  * { box-sizing: border-box; }
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'PingFang SC', 'Microsoft YaHei', sans-serif; background: var(--bg); color: var(--text); margin: 0; padding: 1.5rem; }
  .layout { display: grid; grid-template-columns: 420px 1fr; gap: 1.5rem; max-width: 1300px; margin: 0 auto; }
  @media (max-width: 1000px) { .layout { grid-template-columns: 1fr; } }
  .card { background: #fff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); padding: 1.25rem; margin-bottom: 1rem; }
  h1 { color: var(--primary); font-size: 1.5rem; margin: 0 0 1rem; }
  h2 { font-size: 1rem; margin: 1rem 0 0.5rem; border-bottom: 2px solid var(--primary); padding-bottom: 0.25rem; }
  label { display: block; font-size: 0.85rem; color: var(--muted); margin-top: 0.5rem; }
  select, input { width: 100%; padding: 0.4rem; border: 1px solid var(--border); border-radius: 4px; font-size: 0.9rem; }
  button { margin-top: 1rem; padding: 0.6rem 1rem; border: 0; border-radius: 6px; background: var(--primary); color: #fff; font-size: 1rem; cursor: pointer; }
  button.secondary { background: var(--muted); }
  .big { font-size: 3rem; font-weight: 700; color: var(--primary); text-align: center; }
  .center { text-align: center; color: var(--muted); }
  .warn { padding: 0.75rem; border-radius: 6px; margin: 0.75rem 0; }
  .warn.max { background: #fef3c7; } .warn.min { background: #fee2e2; }
  .row { display: flex; justify-content: space-between; border-bottom: 1px solid var(--border); padding: 0.3rem 0; }
  .pos { color: var(--success); } .neg { color: var(--danger); }
  .rec { border-left: 4px solid var(--danger); background: #fff7ed; padding: 0.5rem 0.75rem; margin: 0.5rem 0; border-radius: 4px; }
  .rec.opp { border-left-color: var(--success); background: #ecfdf5; }
  .error { color: var(--danger); }
</style>
</head>
<body>
<div class="layout">
  <div class="card">
    <h1>🧬 寿命预测器</h1>
    <form id="form">
      <label for="age">年龄</label>
      <input type="number" id="age" min="1" max="120" value="30">
      <label for="gender">性别</label>
      <select id="gender"><option value="male">男性</option><option value="female">女性</option></select>
      <div id="questions"></div>
      <button type="submit">计算寿命</button>
      <button type="button" class="secondary" id="pdf">导出 PDF</button>
      <button type="button" class="secondary" id="html">导出 HTML</button>
      <button type="button" class="secondary" id="whatif">如果改变一个习惯</button>
    </form>
    <p id="status" class="center"></p>
  </div>
  <div id="results"><div class="card center">填写左侧问卷后点击“计算寿命”。</div></div>
</div>
<script>
var factors = [];

function el(tag, cls, text) {
  var e = document.createElement(tag);
  if (cls) e.className = cls;
  if (text !== undefined) e.textContent = text;
  return e;
}

function signed(v) { return (v > 0 ? '+' : '') + v; }

function load() {
  Promise.all([
    fetch('/api/factors').then(function (r) { return r.json(); }),
    fetch('/api/profile/default').then(function (r) { return r.json(); })
  ]).then(function (res) {
    factors = res[0];
    var profile = res[1];
    document.getElementById('age').value = profile.age;
    document.getElementById('gender').value = profile.gender;
    var box = document.getElementById('questions');
    var lastCat = '';
    factors.forEach(function (f) {
      if (f.category_name !== lastCat) {
        box.appendChild(el('h2', '', f.category_name));
        lastCat = f.category_name;
      }
      var l = el('label', '', f.name);
      l.htmlFor = f.id;
      box.appendChild(l);
      var s = el('select');
      s.id = f.id;
      f.options.forEach(function (o) {
        var opt = el('option', '', o.label + ' (' + signed(o.value) + '%)');
        opt.value = o.id;
        s.appendChild(opt);
      });
      s.value = profile.answers[f.id] || f.default_option;
      box.appendChild(s);
    });
  });
}

function request() {
  var answers = {};
  factors.forEach(function (f) { answers[f.id] = document.getElementById(f.id).value; });
  return {
    age: parseInt(document.getElementById('age').value, 10),
    gender: document.getElementById('gender').value,
    answers: answers
  };
}

function post(path) {
  return fetch(path, {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify(request())
  }).then(function (r) { return r.json(); });
}

function showError(data) {
  var out = document.getElementById('results');
  out.innerHTML = '';
  var c = el('div', 'card error', data.error || '请求失败');
  (data.details || []).forEach(function (d) { c.appendChild(el('div', '', d.field + ': ' + d.message)); });
  out.appendChild(c);
}

function render(rep) {
  var res = rep.result;
  var out = document.getElementById('results');
  out.innerHTML = '';

  var head = el('div', 'card');
  head.appendChild(el('div', 'center', '预期寿命'));
  head.appendChild(el('div', 'big', res.total_lifespan.toFixed(1)));
  head.appendChild(el('div', 'center', '岁（还能活 ' + res.remaining_years.toFixed(1) + ' 年）'));
  if (res.limit_warning) {
    head.appendChild(el('div', 'warn ' + res.limit_warning.type, res.limit_warning.message));
  }
  var acm = el('div', 'center ' + (res.total_acm > 0 ? 'neg' : res.total_acm < 0 ? 'pos' : ''),
    '全因死亡率变化 (ACM): ' + signed(res.total_acm) + '%');
  head.appendChild(acm);
  head.appendChild(el('div', 'center', '基准寿命 ' + res.base_lifespan + ' 岁 · 差异 ' + signed(res.lifespan_change) + ' 年'));
  out.appendChild(head);

  if (rep.top_impacts.length) {
    var t = el('div', 'card');
    t.appendChild(el('h2', '', '📋 主要影响因素'));
    rep.top_impacts.forEach(function (i) {
      var row = el('div', 'row');
      row.appendChild(el('span', '', i.label));
      row.appendChild(el('span', i.value > 0 ? 'neg' : 'pos', signed(i.value) + '%'));
      t.appendChild(row);
    });
    out.appendChild(t);
  }

  var cats = el('div', 'card');
  cats.appendChild(el('h2', '', '🗂️ 分类统计'));
  rep.category_stats.forEach(function (c) {
    var row = el('div', 'row');
    row.appendChild(el('span', '', c.name + ' (' + c.count + ')'));
    row.appendChild(el('span', c.total_acm > 0 ? 'neg' : c.total_acm < 0 ? 'pos' : '', signed(c.total_acm) + '%'));
    cats.appendChild(row);
  });
  out.appendChild(cats);

  var prio = { high: '高', medium: '中', low: '低' };
  if (rep.negative_recommendations.length) {
    var n = el('div', 'card');
    n.appendChild(el('h2', '', '⚠️ 需要改善的方面'));
    rep.negative_recommendations.forEach(function (r) {
      var d = el('div', 'rec');
      d.appendChild(el('strong', '', r.label + ' · ' + prio[r.priority] + '优先级'));
      d.appendChild(el('p', '', r.advice));
      d.appendChild(el('small', '', '当前影响: +' + r.current_impact + '% ACM'));
      n.appendChild(d);
    });
    out.appendChild(n);
  }
  if (rep.positive_recommendations.length) {
    var p = el('div', 'card');
    p.appendChild(el('h2', '', '💡 增寿建议'));
    rep.positive_recommendations.forEach(function (r) {
      var d = el('div', 'rec opp');
      d.appendChild(el('strong', '', prio[r.priority] + '优先级'));
      d.appendChild(el('p', '', r.advice));
      d.appendChild(el('small', '', '潜在收益: ' + r.potential_gain + '% ACM'));
      p.appendChild(d);
    });
    out.appendChild(p);
  }
}

function renderWhatIf(a) {
  var out = document.getElementById('results');
  var c = el('div', 'card');
  c.appendChild(el('h2', '', '🔍 如果改变一个习惯'));
  var rows = a.rows.filter(function (r) { return r.best_gain > 0; });
  if (!rows.length) { c.appendChild(el('p', 'center', '没有可以单独改善的因素')); }
  rows.forEach(function (r) {
    var best = r.cells.filter(function (x) { return x.option === r.best_option; })[0];
    var row = el('div', 'row');
    row.appendChild(el('span', '', r.name + ' → ' + best.label));
    row.appendChild(el('span', 'pos', '+' + r.best_gain.toFixed(1) + ' 年'));
    c.appendChild(row);
  });
  out.insertBefore(c, out.firstChild);
}

document.getElementById('whatif').addEventListener('click', function () {
  post('/api/what-if').then(function (data) {
    if (data.success) { renderWhatIf(data.analysis); } else { showError(data); }
  });
});

document.getElementById('form').addEventListener('submit', function (e) {
  e.preventDefault();
  post('/api/estimate').then(function (data) {
    if (data.success) { render(data.report); } else { showError(data); }
  });
});

['pdf', 'html'].forEach(function (kind) {
  document.getElementById(kind).addEventListener('click', function () {
    var status = document.getElementById('status');
    status.textContent = '...';
    post('/api/export-' + kind).then(function (data) {
      if (data.success) {
        render(data.report);
        status.textContent = '已保存: ' + data.file_path;
      } else {
        showError(data);
        status.textContent = '';
      }
    });
  });
});

load();
</script>
</body>
</html>
`
