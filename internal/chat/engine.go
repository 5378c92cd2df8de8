package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	cache "github.com/baraka-desk/backend/internal/cache/redis"
	"github.com/baraka-desk/backend/internal/dataset"
	"github.com/baraka-desk/backend/internal/lang"
	"github.com/baraka-desk/backend/internal/llm"
	"github.com/baraka-desk/backend/internal/metrics"
	"github.com/baraka-desk/backend/internal/routing"
	"github.com/baraka-desk/backend/internal/storage/models"
	"github.com/baraka-desk/backend/internal/storage/sqlite"
	"github.com/baraka-desk/backend/internal/textindex"
	"github.com/baraka-desk/backend/pkg/logger"
)

// Messages returned when the remote fallback cannot run. The first is
// used when no API key is configured, the second when the call fails.
const (
	msgNoFallback   = "I'm not fully confident yet. Please rephrase or add more detail."
	msgFallbackDown = "AI fallback is unavailable right now. I'll answer using SACCO FAQs."
)

type Config struct {
	TopK            int
	CustomThreshold float64
	BaseThreshold   float64
}

// Engine answers a chat turn through the ordered fallback chain:
// admin-curated FAQs, then the base dataset, then a remote answer
// constrained to the top retrieved snippets. Every turn is appended to
// the chat log.
type Engine struct {
	db        *sqlite.Client
	base      *dataset.Store
	llmClient *llm.Client
	router    *routing.Router
	cache     *cache.Client
	cfg       Config
}

func NewEngine(db *sqlite.Client, base *dataset.Store, llmClient *llm.Client, router *routing.Router, replyCache *cache.Client, cfg Config) *Engine {
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	return &Engine{
		db:        db,
		base:      base,
		llmClient: llmClient,
		router:    router,
		cache:     replyCache,
		cfg:       cfg,
	}
}

type TurnRequest struct {
	Message  string
	Username string
	// Lang forces the reply language; empty means follow the detected
	// input language.
	Lang string
}

type TurnResponse struct {
	Reply        string  `json:"reply"`
	Department   string  `json:"department"`
	DeptLabel    string  `json:"dept_label"`
	RoutingScore float64 `json:"routing_score"`
	Method       string  `json:"routing_method"`
	Source       string  `json:"source"`
	Score        float64 `json:"score"`
	Lang         string  `json:"lang"`
}

// Respond processes one chat turn end to end.
func (e *Engine) Respond(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	start := time.Now()

	detected, queryEN := e.llmClient.DetectAndTranslate(ctx, req.Message)
	metrics.Translations.WithLabelValues("inbound").Inc()

	outLang := detected
	if lang.Valid(req.Lang) {
		outLang = req.Lang
	}

	decision := e.router.Route(queryEN)
	metrics.RoutingDecisions.WithLabelValues(decision.Method, decision.Department).Inc()

	resp := e.generateReply(ctx, req, queryEN, decision, outLang)

	metrics.ChatRequests.WithLabelValues(resp.Source).Inc()
	metrics.ChatDuration.WithLabelValues(resp.Source).Observe(time.Since(start).Seconds())

	logger.Info("Chat turn answered",
		zap.String("department", resp.Department),
		zap.String("source", resp.Source),
		zap.Float64("score", resp.Score),
		zap.String("lang", resp.Lang),
		zap.Duration("latency", time.Since(start)),
	)

	return resp, nil
}

// RouteOnly classifies text without generating a reply; the complaint
// flow uses it before ticket creation.
func (e *Engine) RouteOnly(ctx context.Context, message string) (routing.Decision, string, string) {
	detected, textEN := e.llmClient.DetectAndTranslate(ctx, message)
	decision := e.router.Route(textEN)
	metrics.RoutingDecisions.WithLabelValues(decision.Method, decision.Department).Inc()
	return decision, textEN, detected
}

// GenerateReply produces the instant answer for an already-routed text.
func (e *Engine) GenerateReply(ctx context.Context, req TurnRequest, queryEN string, decision routing.Decision, outLang string) *TurnResponse {
	return e.generateReply(ctx, req, queryEN, decision, outLang)
}

func (e *Engine) generateReply(ctx context.Context, req TurnRequest, queryEN string, decision routing.Decision, outLang string) *TurnResponse {
	dept := decision.Department

	cacheKey := cache.ReplyKey(textindex.Normalize(queryEN), dept, outLang)
	var cached TurnResponse
	if hit, err := e.cache.GetReply(ctx, cacheKey, &cached); err != nil {
		logger.Warn("Reply cache lookup failed", zap.Error(err))
	} else if hit {
		metrics.CacheHits.WithLabelValues("reply").Inc()
		e.logTurn(req, &cached)
		return &cached
	}
	metrics.CacheMisses.WithLabelValues("reply").Inc()

	resp := &TurnResponse{
		Department:   dept,
		DeptLabel:    routing.Label(dept),
		RoutingScore: decision.Score,
		Method:       decision.Method,
		Lang:         outLang,
	}

	if answer, score, ok := e.answerFromCustom(queryEN, dept); ok {
		resp.Reply = e.translateOut(ctx, answer, outLang)
		resp.Source = models.SourceCustom
		resp.Score = score
	} else if answer, score, ok := e.answerFromBase(queryEN, dept); ok {
		resp.Reply = e.translateOut(ctx, answer, outLang)
		resp.Source = models.SourceBase
		resp.Score = score
	} else {
		resp.Reply, resp.Source = e.answerFromFallback(ctx, queryEN, outLang)
	}

	if resp.Score > 0 {
		metrics.ReplySimilarity.Observe(resp.Score)
	}

	if resp.Source != models.SourceFallback {
		if err := e.cache.SetReply(ctx, cacheKey, resp); err != nil {
			logger.Warn("Reply cache store failed", zap.Error(err))
		}
	}

	e.logTurn(req, resp)
	return resp
}

// answerFromCustom searches the admin-curated FAQs for the routed
// department. The index is rebuilt from the current rows on each call
// so edits take effect immediately.
func (e *Engine) answerFromCustom(queryEN, dept string) (string, float64, bool) {
	faqs, err := e.db.ListFAQs(dept)
	if err != nil {
		logger.Warn("Custom FAQ lookup failed", zap.Error(err))
		return "", 0, false
	}
	if len(faqs) == 0 {
		return "", 0, false
	}

	questions := make([]string, len(faqs))
	for i, f := range faqs {
		questions[i] = textindex.StripMarkup(f.Question)
	}

	index := textindex.NewIndex(questions)
	hits := index.Search(queryEN, 1)
	if len(hits) == 0 {
		return "", 0, false
	}

	best := hits[0]
	if best.Score < e.cfg.CustomThreshold {
		return "", 0, false
	}
	return faqs[best.Pos].Answer, best.Score, true
}

func (e *Engine) answerFromBase(queryEN, dept string) (string, float64, bool) {
	matches := e.base.Search(dept, queryEN, 1)
	if len(matches) == 0 {
		return "", 0, false
	}

	best := matches[0]
	if best.Score < e.cfg.BaseThreshold {
		return "", 0, false
	}
	return best.Entry.Answer, best.Score, true
}

// answerFromFallback asks the remote model, constrained to the top
// base-dataset snippets. Failures degrade to a fixed message; a chat
// turn never errors out because the API is down.
func (e *Engine) answerFromFallback(ctx context.Context, queryEN, outLang string) (string, string) {
	if !e.llmClient.Available() {
		metrics.LLMFallbacks.WithLabelValues("unavailable").Inc()
		return msgNoFallback, models.SourceFallback
	}

	top := e.base.SearchAll(queryEN, e.cfg.TopK)
	snippets := make([]string, 0, len(top))
	for _, m := range top {
		snippets = append(snippets, "Q: "+m.Entry.Question+"\nA: "+m.Entry.Answer)
	}

	answer, err := e.llmClient.FallbackAnswer(ctx, queryEN, snippets, outLang)
	if err != nil {
		logger.Warn("AI fallback failed", zap.Error(err))
		metrics.LLMFallbacks.WithLabelValues("error").Inc()
		return msgFallbackDown, models.SourceFallback
	}

	metrics.LLMFallbacks.WithLabelValues("ok").Inc()
	return answer, models.SourceOpenAI
}

func (e *Engine) translateOut(ctx context.Context, answerEN, outLang string) string {
	if outLang == lang.English {
		return answerEN
	}
	metrics.Translations.WithLabelValues("outbound").Inc()
	return e.llmClient.Translate(ctx, answerEN, outLang)
}

func (e *Engine) logTurn(req TurnRequest, resp *TurnResponse) {
	err := e.db.InsertChatLog(&models.ChatLog{
		Username:    req.Username,
		UserMessage: req.Message,
		BotReply:    resp.Reply,
		Source:      resp.Source,
		Score:       resp.Score,
		Department:  resp.Department,
	})
	if err != nil {
		logger.Error("Failed to log chat turn", zap.Error(err))
	}
}
