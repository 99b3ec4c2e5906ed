package trivia

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Quiz draw outcomes.
const (
	DrawQuestion  = "question"
	DrawExhausted = "exhausted"
	DrawFailed    = "failed"
)

// Metrics counts trivia activity. A nil *Metrics records nothing.
type Metrics struct {
	quizDraws        *prometheus.CounterVec
	questionsCreated prometheus.Counter
	questionsDeleted prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		quizDraws: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trivia_quiz_draws_total",
			Help: "Quiz question draws by outcome.",
		}, []string{"outcome"}),
		questionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "trivia_questions_created_total",
			Help: "Questions created through the API.",
		}),
		questionsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "trivia_questions_deleted_total",
			Help: "Questions deleted through the API.",
		}),
	}
}

func (m *Metrics) observeDraw(outcome string) {
	if m == nil {
		return
	}
	m.quizDraws.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeCreate() {
	if m == nil {
		return
	}
	m.questionsCreated.Inc()
}

func (m *Metrics) observeDelete() {
	if m == nil {
		return
	}
	m.questionsDeleted.Inc()
}
