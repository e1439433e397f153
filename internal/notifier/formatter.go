package notifier

import (
	"fmt"
	"strings"

	"KimchiGold/internal/analysis"
	"KimchiGold/internal/backtest"
	"KimchiGold/internal/model"
)

// FormatQuoteReport formats a daily collection report.
func FormatQuoteReport(q *model.GoldQuote) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>금 김치프리미엄</b> | %s\n\n", q.CollectedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("국내 금시세: %.2f 원/g\n", q.DomesticKRWPerGram))
	b.WriteString(fmt.Sprintf("국제 금시세: %.2f $/oz\n", q.InternationalUSDOz))
	b.WriteString(fmt.Sprintf("환율: %.2f 원/달러\n", q.USDKRW))
	b.WriteString(fmt.Sprintf("국제금 원화환산: %.2f 원/g\n\n", q.InternationalKRWG))
	b.WriteString(fmt.Sprintf("💰 <b>김치프리미엄: %+.2f 원/g (%+.2f%%)</b>\n", q.PremiumKRWPerGram, q.PremiumPercent))

	return b.String()
}

// FormatVerdict formats an outlier verdict for the given column.
func FormatVerdict(column string, v analysis.Verdict) string {
	var b strings.Builder

	if v.Insufficient {
		b.WriteString("ℹ️ <b>이상치 분석 불가</b>\n\n")
		b.WriteString(fmt.Sprintf("분석 대상: %s\n", column))
		b.WriteString(fmt.Sprintf("분석 기간 내 데이터 %d건 — 판정에 부족합니다.\n", v.SampleSize))
		b.WriteString("수집 파이프라인 상태를 확인하세요.")
		return b.String()
	}

	if v.IsOutlier {
		b.WriteString("🚨 <b>김치프리미엄 이상치 감지!</b>\n\n")
	} else {
		b.WriteString("✅ <b>김치프리미엄 정상 범위</b>\n\n")
	}
	b.WriteString(fmt.Sprintf("분석 대상: %s\n", column))
	b.WriteString(fmt.Sprintf("최신값: %.2f (%s)\n", v.LatestValue, v.LatestDate.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("정상 범위: [%.2f, %.2f]\n", v.Bounds.Lower, v.Bounds.Upper))
	b.WriteString(fmt.Sprintf("표본: 최근 %d건", v.SampleSize))

	return b.String()
}

// FormatBacktestSummary formats a backtest result report.
func FormatBacktestSummary(res *backtest.Result) string {
	var b strings.Builder

	b.WriteString("📈 <b>백테스트 결과</b>\n\n")
	b.WriteString(fmt.Sprintf("매수/매도 임계값: %.1f%% / %.1f%%\n",
		res.Params.BuyThreshold, res.Params.SellThreshold))
	b.WriteString(fmt.Sprintf("초기 투자금: %.0f원\n", res.Params.InitialInvestment))
	b.WriteString(fmt.Sprintf("최종 가치: %.0f원\n", res.FinalValue))
	b.WriteString(fmt.Sprintf("총 수익: %+.0f원 (%+.2f%%)\n", res.TotalReturn, res.ReturnRate))
	b.WriteString(fmt.Sprintf("거래 횟수: %d회\n", len(res.Trades)))
	b.WriteString(fmt.Sprintf("일수익률 평균/표준편차: %+.4f%% / %.4f%%",
		res.MeanDailyRet*100, res.StdDailyRet*100))

	return b.String()
}

// FormatSweepTop formats the best rows of a threshold sweep.
func FormatSweepTop(results []backtest.SweepResult, top int) string {
	if len(results) == 0 {
		return "최적화 결과가 없습니다."
	}
	if top > len(results) {
		top = len(results)
	}

	var b strings.Builder
	b.WriteString("🔍 <b>임계값 최적화 결과</b>\n\n")
	for i := 0; i < top; i++ {
		r := results[i]
		b.WriteString(fmt.Sprintf("%d. ±%.1f%% → 수익률 %+.2f%% (%d회 거래)\n",
			i+1, r.Threshold, r.ReturnRate, r.Trades))
	}
	best := results[0]
	b.WriteString(fmt.Sprintf("\n최적 임계값: ±%.1f%% (최종 %.0f원)", best.Threshold, best.FinalValue))

	return b.String()
}
