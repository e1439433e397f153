package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"KimchiGold/internal/analysis"
	"KimchiGold/internal/backtest"
	"KimchiGold/internal/chart"
	"KimchiGold/internal/collector"
	"KimchiGold/internal/journal"
	"KimchiGold/internal/model"
	"KimchiGold/internal/notifier"
	"KimchiGold/internal/recorder"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Journal   *journal.Journal
	Detector  analysis.Detector
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context

	ChartMonths    int
	ChartOutput    string
	BacktestParams backtest.Params
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, jnl *journal.Journal,
	det analysis.Detector, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds()),
		Collector:      col,
		Journal:        jnl,
		Detector:       det,
		Notifier:       tn,
		Recorder:       rec,
		Ctx:            ctx,
		ChartMonths:    chart.DefaultMonths,
		ChartOutput:    "data/kimchi_gold_recent.xlsx",
		BacktestParams: backtest.DefaultParams(),
	}
}

// RegisterAll registers the daily collection, weekly chart, and monthly
// backtest tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron, monthlyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyChartTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	if _, err := s.Cron.AddFunc(monthlyCron, s.monthlyBacktestTask); err != nil {
		return fmt.Errorf("register monthly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

// dailyTask collects today's quotes, appends them to the journal, and
// evaluates the premium series for outliers.
func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily collection task")
	quote, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[ERROR] daily collect: %v", err)
		s.trySend(fmt.Sprintf("❌ 데이터 수집 실패: %v", err))
		return
	}

	wrote, err := s.Journal.AppendOnce(quote)
	if err != nil {
		log.Printf("[ERROR] journal append: %v", err)
		s.trySend(fmt.Sprintf("❌ 저널 기록 실패: %v", err))
		return
	}
	if !wrote {
		log.Println("[INFO] today's row already logged, skipping append")
	}

	if err := s.Recorder.RecordQuote(quote); err != nil {
		log.Printf("[ERROR] record quote: %v", err)
	}

	report := notifier.FormatQuoteReport(quote)
	verdict, err := s.checkPremium(time.Now())
	if err != nil {
		log.Printf("[ERROR] outlier check: %v", err)
		s.trySend(report + "\n⚠️ 이상치 분석 실패: " + err.Error())
		return
	}
	if verdict.IsOutlier || verdict.Insufficient {
		report += "\n" + notifier.FormatVerdict(model.ColumnPremiumPercent, verdict)
	}
	s.trySend(report)
}

// checkPremium runs the outlier detector over the premium series and
// records the verdict.
func (s *Scheduler) checkPremium(asOf time.Time) (analysis.Verdict, error) {
	series, err := s.Journal.Series(model.ColumnPremiumPercent)
	if err != nil {
		return analysis.Verdict{}, err
	}
	verdict, err := s.Detector.Evaluate(series, asOf)
	if err != nil {
		return analysis.Verdict{}, err
	}
	if err := s.Recorder.RecordVerdict(&recorder.VerdictEvent{
		Column:  model.ColumnPremiumPercent,
		Verdict: verdict,
	}); err != nil {
		log.Printf("[ERROR] record verdict: %v", err)
	}
	return verdict, nil
}

func (s *Scheduler) weeklyChartTask() {
	log.Println("[INFO] running weekly chart task")
	records, err := s.Journal.Load()
	if err != nil {
		log.Printf("[ERROR] load journal for chart: %v", err)
		return
	}
	if err := chart.Generate(records, s.ChartMonths, time.Now(), s.ChartOutput); err != nil {
		log.Printf("[ERROR] generate chart: %v", err)
		s.trySend(fmt.Sprintf("❌ 차트 생성 실패: %v", err))
		return
	}
	caption := fmt.Sprintf("📉 최근 %d개월 김치프리미엄 차트", s.ChartMonths)
	if err := s.Notifier.SendDocument(s.ChartOutput, caption); err != nil {
		log.Printf("[ERROR] send chart workbook: %v", err)
	}
}

func (s *Scheduler) monthlyBacktestTask() {
	log.Println("[INFO] running monthly backtest summary")
	records, err := s.Journal.Load()
	if err != nil {
		log.Printf("[ERROR] load journal for backtest: %v", err)
		return
	}
	res, err := backtest.Run(records, s.BacktestParams)
	if err != nil {
		log.Printf("[ERROR] monthly backtest: %v", err)
		return
	}
	s.trySend(notifier.FormatBacktestSummary(res))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/now", "현재 시세":
		quote, err := s.Collector.Collect()
		if err != nil {
			return fmt.Sprintf("수집 실패: %v", err)
		}
		return notifier.FormatQuoteReport(quote)
	case "/check", "이상치 확인":
		verdict, err := s.checkPremium(time.Now())
		if err != nil {
			if errors.Is(err, journal.ErrNoJournal) {
				return "저널 파일이 없습니다. 먼저 데이터를 수집하세요."
			}
			return fmt.Sprintf("분석 실패: %v", err)
		}
		return notifier.FormatVerdict(model.ColumnPremiumPercent, verdict)
	case "/chart", "차트":
		go s.weeklyChartTask()
		return "차트를 생성 중입니다..."
	case "/backtest", "백테스트":
		go s.monthlyBacktestTask()
		return "백테스트를 실행 중입니다..."
	default:
		return "사용 가능한 명령:\n• /now 현재 시세\n• /check 이상치 확인\n• /chart 차트\n• /backtest 백테스트"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
