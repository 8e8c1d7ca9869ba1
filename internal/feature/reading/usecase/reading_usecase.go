// Package usecase はreadingフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"natal_backend/internal/feature/reading/domain/entity"
)

const (
	// NarrationPromptTemplate は追加ナレーション生成のプロンプトテンプレートです。
	// 引数は順に、名前・太陽サイン・月サイン・上昇サインです。
	NarrationPromptTemplate = "Write a warm, encouraging three-paragraph reflection for %s, whose natal chart has the Sun in %s, the Moon in %s, and %s rising. Address the reader directly in plain language and close with one sentence of practical advice."

	// aspectLimit は読み物に載せるアスペクトの最大数です。
	aspectLimit = 15
)

// ChartSource は注文に紐づく保存済みチャート文書への読み取り口を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ChartSource interface {
	// DocumentByOrder は注文に紐づくチャート文書とそのハッシュを返します。
	// 注文が無ければErrOrderNotFound、チャート未添付ならErrChartNotAttachedを返します。
	DocumentByOrder(ctx context.Context, orderID string) (doc []byte, hash string, err error)
}

// InterpretationLibrary は決定論的な解釈ライブラリを抽象化します。
// 有効な文書に対しては全ての照会が成功します。失敗は文書の破損を意味します。
type InterpretationLibrary interface {
	// SignProfile は指定サインの解釈資料を返します。
	SignProfile(sign string) (entity.SignProfile, error)

	// MoonNotes は月サイン向けの感情面の記述を返します。
	MoonNotes(sign string) (entity.MoonNotes, error)

	// HouseTheme は指定ハウス（1..12）のテーマを返します。
	HouseTheme(house int) (entity.HouseTheme, error)
}

// Narrator は生成AIによる追加ナレーションを抽象化します。
type Narrator interface {
	// Narrate はプロンプトからナレーション本文を生成します。
	Narrate(ctx context.Context, prompt string) (string, error)
}

// readingUsecase は保存済みチャートから読み物を組み立てます。
type readingUsecase struct {
	charts  ChartSource
	library InterpretationLibrary

	// narrator はnil可。nilの場合はライブラリのセクションのみで構成します。
	narrator Narrator
}

// NewReadingUsecase はreadingUsecaseの新しいインスタンスを生成します。
func NewReadingUsecase(charts ChartSource, library InterpretationLibrary, narrator Narrator) *readingUsecase {
	return &readingUsecase{charts: charts, library: library, narrator: narrator}
}

// BuildReading は注文に紐づくチャート文書を解釈し、セクション列に組み立てます。
// ナレーターが設定されていれば追加セクションを生成しますが、その失敗は
// 読み物全体を失敗させず、ライブラリのみの結果にフォールバックします。
func (u *readingUsecase) BuildReading(ctx context.Context, orderID string) (*entity.Reading, error) {
	doc, hash, err := u.charts.DocumentByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	summary, err := ParseDocument(doc)
	if err != nil {
		return nil, err
	}

	sections, err := u.assembleSections(summary, hash)
	if err != nil {
		return nil, err
	}

	reading := &entity.Reading{
		OrderID:   orderID,
		ChartHash: hash,
		Source:    entity.SourceLibrary,
		Sections:  sections,
	}

	if u.narrator != nil {
		prompt := fmt.Sprintf(NarrationPromptTemplate,
			summary.Birth.Name, summary.Summary.SunSign, summary.Summary.MoonSign, summary.Summary.RisingSign)
		text, err := u.narrator.Narrate(ctx, prompt)
		if err != nil || strings.TrimSpace(text) == "" {
			slog.Warn("narrator unavailable, serving library reading", "order_id", orderID, "error", err)
			return reading, nil
		}
		narration := entity.Section{
			Key:   "cosmic_overview",
			Title: "A Note from the Cosmos",
			Body:  strings.TrimSpace(text),
		}
		reading.Sections = slices.Insert(reading.Sections, 1, narration)
		reading.Source = entity.SourceLibraryGemini
	}
	return reading, nil
}

// assembleSections は文書サマリーから決定論的なセクション列を組み立てます。
// セクションの構成と順序は固定です。
func (u *readingUsecase) assembleSections(s ChartSummary, hash string) ([]entity.Section, error) {
	sun, err := u.library.SignProfile(s.Summary.SunSign)
	if err != nil {
		return nil, fmt.Errorf("interpretation library: %w", err)
	}
	moon, err := u.library.SignProfile(s.Summary.MoonSign)
	if err != nil {
		return nil, fmt.Errorf("interpretation library: %w", err)
	}
	rising, err := u.library.SignProfile(s.Summary.RisingSign)
	if err != nil {
		return nil, fmt.Errorf("interpretation library: %w", err)
	}
	moonNotes, err := u.library.MoonNotes(s.Summary.MoonSign)
	if err != nil {
		return nil, fmt.Errorf("interpretation library: %w", err)
	}

	houses, err := u.housesSection(s)
	if err != nil {
		return nil, err
	}

	return []entity.Section{
		overviewSection(s, sun, moon, rising),
		sunSection(s, sun),
		moonSection(s, moonNotes),
		risingSection(s, rising),
		planetsSection(s),
		houses,
		aspectsSection(s),
		guidanceSection(s, sun, moon),
		appendixSection(s, hash),
	}, nil
}

// overviewSection は挨拶文とビッグスリーの一覧をまとめます。
func overviewSection(s ChartSummary, sun, moon, rising entity.SignProfile) entity.Section {
	placements := strings.Join([]string{
		fmt.Sprintf("Sun (Identity): %s (%s, %s)", s.Summary.SunSign, sun.Element, sun.Modality),
		fmt.Sprintf("Moon (Emotions): %s (%s, %s)", s.Summary.MoonSign, moon.Element, moon.Modality),
		fmt.Sprintf("Rising (Persona): %s (%s, %s)", s.Summary.RisingSign, rising.Element, rising.Modality),
	}, "\n")

	body := strings.Join([]string{
		fmt.Sprintf("Welcome to your personalized astrological report, %s. This document represents a detailed analysis of the celestial configuration at the exact moment of your birth.", s.Birth.Name),
		"Astrology is not about fate or fortune-telling. Rather, it is a symbolic language that helps us understand ourselves more deeply. Your natal chart is like a map—it shows the terrain of your psyche, but you choose which paths to walk.",
		placements,
	}, "\n\n")

	return entity.Section{Key: "overview", Title: "Your Cosmic Overview", Body: body}
}

// sunSection は太陽サインの解釈をまとめます。
func sunSection(s ChartSummary, profile entity.SignProfile) entity.Section {
	parts := make([]string, 0, 6)
	if pos, ok := positionOf(s, "Sun"); ok {
		parts = append(parts, fmt.Sprintf("Your Sun at %s in House %d", pos.FormattedPosition(), pos.House))
	}
	parts = append(parts,
		"Your Core Identity",
		profile.CoreIdentity,
		"Your Natural Strengths\n"+bulletList(profile.Strengths),
		"Growth Areas\n"+bulletList(profile.Challenges),
		"Life Purpose\n"+profile.LifePurpose,
	)
	return entity.Section{
		Key:   "sun",
		Title: fmt.Sprintf("The Sun in %s: %s", s.Summary.SunSign, profile.Title),
		Body:  strings.Join(parts, "\n\n"),
	}
}

// moonSection は月サインの感情面の解釈をまとめます。
func moonSection(s ChartSummary, notes entity.MoonNotes) entity.Section {
	parts := make([]string, 0, 4)
	if pos, ok := positionOf(s, "Moon"); ok {
		parts = append(parts, fmt.Sprintf("Your Moon at %s in House %d", pos.FormattedPosition(), pos.House))
	}
	parts = append(parts,
		"While your Sun represents your conscious identity, your Moon reveals your emotional nature, instinctive reactions, and deepest needs. The Moon governs your inner world.",
		"Your Emotional Nature\n"+notes.EmotionalNature,
		"Your Emotional Needs\n"+notes.Needs,
	)
	return entity.Section{
		Key:   "moon",
		Title: fmt.Sprintf("The Moon in %s: Your Emotional Self", s.Summary.MoonSign),
		Body:  strings.Join(parts, "\n\n"),
	}
}

// risingSection は上昇サインの解釈をまとめます。
func risingSection(s ChartSummary, profile entity.SignProfile) entity.Section {
	sign := s.Summary.RisingSign
	parts := []string{
		fmt.Sprintf("Ascendant at %.2f degrees", s.Ascendant),
		fmt.Sprintf("Your Rising Sign, or Ascendant, is %s. This is the mask you wear when meeting the world, your automatic first response to new situations, and how others perceive you before they know you more deeply.", sign),
		fmt.Sprintf("With %s Rising, you approach life with %s energy. First impressions of you often include %s's characteristic traits.", sign, strings.ToLower(profile.Element), sign),
	}
	return entity.Section{
		Key:   "rising",
		Title: fmt.Sprintf("%s Rising: Your Outer Self", sign),
		Body:  strings.Join(parts, "\n\n"),
	}
}

// planetsSection は全ボディの配置一覧をまとめます。
func planetsSection(s ChartSummary) entity.Section {
	lines := make([]string, 0, len(s.Positions))
	for _, p := range s.Positions {
		lines = append(lines, fmt.Sprintf("%s: %s (House %d)", p.Body, p.FormattedPosition(), p.House))
	}
	body := strings.Join([]string{
		"Each planet represents a different facet of your personality. Their signs show how these energies express themselves, while house placements reveal where they are most active.",
		strings.Join(lines, "\n"),
	}, "\n\n")
	return entity.Section{Key: "planets", Title: "Your Planetary Positions", Body: body}
}

// housesSection は12ハウスのテーマと在住ボディをまとめます。
func (u *readingUsecase) housesSection(s ChartSummary) (entity.Section, error) {
	blocks := make([]string, 0, len(s.Houses)+1)
	blocks = append(blocks, "The twelve houses represent different areas of life. Each house cusp falls in a zodiac sign, coloring how you experience that life domain.")
	for _, h := range s.Houses {
		theme, err := u.library.HouseTheme(h.House)
		if err != nil {
			return entity.Section{}, fmt.Errorf("interpretation library: %w", err)
		}
		txt := fmt.Sprintf("%s Cusp in %s.", theme.Description, h.Sign)
		if occupants := bodiesInHouse(s, h.House); len(occupants) > 0 {
			txt += fmt.Sprintf(" Contains: %s.", strings.Join(occupants, ", "))
		}
		blocks = append(blocks, fmt.Sprintf("House %d: %s\n%s", h.House, theme.Theme, txt))
	}
	return entity.Section{Key: "houses", Title: "The Twelve Houses", Body: strings.Join(blocks, "\n\n")}, nil
}

// aspectsSection はオーブの小さい順に最大aspectLimit件のアスペクトをまとめます。
func aspectsSection(s ChartSummary) entity.Section {
	aspects := s.Aspects
	if len(aspects) > aspectLimit {
		aspects = aspects[:aspectLimit]
	}
	parts := make([]string, 0, 2)
	parts = append(parts, "Aspects are geometric angles between planets that reveal how different parts of your psyche interact. Harmonious aspects indicate natural talents; challenging aspects point to growth areas.")
	if len(aspects) > 0 {
		lines := make([]string, 0, len(aspects))
		for _, a := range aspects {
			lines = append(lines, fmt.Sprintf("%s - %s: %s, orb %.1f deg (%s)", a.BodyA, a.BodyB, a.Type, a.Orb, a.Strength()))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return entity.Section{Key: "aspects", Title: "Planetary Aspects", Body: strings.Join(parts, "\n\n")}
}

// guidanceSection はビッグスリーから人生の指針をまとめます。
func guidanceSection(s ChartSummary, sun, moon entity.SignProfile) entity.Section {
	parts := []string{
		"Based on your complete natal chart, here are key themes for your life journey:",
		fmt.Sprintf("Your Core Purpose\nWith your Sun in %s and Rising in %s, your life purpose involves expressing %s energy through the lens of %s's approach to life.",
			s.Summary.SunSign, s.Summary.RisingSign, strings.ToLower(sun.Element), s.Summary.RisingSign),
		fmt.Sprintf("Emotional Fulfillment\nYour Moon in %s reveals that emotional fulfillment comes through %s experiences. Honor your need for what this sign represents.",
			s.Summary.MoonSign, strings.ToLower(moon.Element)),
		"Key Life Themes\nThe houses containing the most planets indicate areas of concentrated life focus. Pay special attention to these domains as they represent where much of your growth will occur.",
		"The stars incline, but do not compel. You have the power to work with your cosmic blueprint in whatever way serves your highest good.",
	}
	return entity.Section{Key: "guidance", Title: "Life Guidance and Purpose", Body: strings.Join(parts, "\n\n")}
}

// appendixSection は計算条件と免責事項をまとめます。
func appendixSection(s ChartSummary, hash string) entity.Section {
	details := strings.Join([]string{
		"Name: " + s.Birth.Name,
		fmt.Sprintf("Birth Date: %s %s", s.Birth.Date, s.Birth.Time),
		fmt.Sprintf("Location: %.6f, %.6f", s.Birth.Latitude, s.Birth.Longitude),
		"Timezone: " + s.Birth.Timezone,
		"House System: Equal",
		"Chart Hash: " + hash,
	}, "\n")
	parts := []string{
		details,
		"Disclaimer\nThis astrological report is provided for entertainment and self-reflection purposes. Astrology should not be used as a substitute for professional medical, psychological, financial, or legal advice. Individual experiences may vary.",
		"Thank you for choosing Celestial Insights. May the stars guide your journey.",
	}
	return entity.Section{Key: "appendix", Title: "Appendix: Technical Details", Body: strings.Join(parts, "\n\n")}
}

// positionOf は指定ボディの配置を返します。
func positionOf(s ChartSummary, body string) (PositionSummary, bool) {
	for _, p := range s.Positions {
		if p.Body == body {
			return p, true
		}
	}
	return PositionSummary{}, false
}

// bodiesInHouse は指定ハウスに在住するボディ名を配置順に返します。
func bodiesInHouse(s ChartSummary, house int) []string {
	var names []string
	for _, p := range s.Positions {
		if p.House == house {
			names = append(names, p.Body)
		}
	}
	return names
}

// bulletList は項目を1行ずつ `* 項目` 形式に整形します。
func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "* "+item)
	}
	return strings.Join(lines, "\n")
}
