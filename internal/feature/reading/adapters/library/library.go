// Package library は埋め込みJSONを読み込む決定論的な解釈ライブラリを提供します。
package library

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"natal_backend/internal/feature/reading/domain/entity"
	"natal_backend/internal/feature/reading/usecase"
)

//go:embed data/*.json
var libraryFS embed.FS

const (
	signProfilesFile = "data/sign_profiles.json"
	houseThemesFile  = "data/house_themes.json"
)

// Library は埋め込まれた解釈データを遅延読み込みで提供します。
// 読み込みは最初の照会時に一度だけ行われます。
type Library struct {
	once     sync.Once
	profiles map[string]entity.SignProfile
	houses   map[string]entity.HouseTheme
	err      error
}

// LibraryがInterpretationLibraryを実装していることをコンパイル時に検証します。
var _ usecase.InterpretationLibrary = (*Library)(nil)

// NewLibrary はLibraryの新しいインスタンスを生成します。
func NewLibrary() *Library {
	return &Library{}
}

func (l *Library) init() {
	raw, err := libraryFS.ReadFile(signProfilesFile)
	if err != nil {
		l.err = fmt.Errorf("read embedded sign profiles: %w", err)
		return
	}
	if err := json.Unmarshal(raw, &l.profiles); err != nil {
		l.err = fmt.Errorf("parse embedded sign profiles: %w", err)
		return
	}

	raw, err = libraryFS.ReadFile(houseThemesFile)
	if err != nil {
		l.err = fmt.Errorf("read embedded house themes: %w", err)
		return
	}
	if err := json.Unmarshal(raw, &l.houses); err != nil {
		l.err = fmt.Errorf("parse embedded house themes: %w", err)
	}
}

// SignProfile は指定サインの解釈資料を返します。
func (l *Library) SignProfile(sign string) (entity.SignProfile, error) {
	l.once.Do(l.init)
	if l.err != nil {
		return entity.SignProfile{}, l.err
	}
	p, ok := l.profiles[sign]
	if !ok {
		return entity.SignProfile{}, fmt.Errorf("%w: %q", usecase.ErrUnknownSign, sign)
	}
	return p, nil
}

// MoonNotes は月サイン向けの感情面の記述を返します。
// 文面はサイン名とそのエレメントから組み立てます。
func (l *Library) MoonNotes(sign string) (entity.MoonNotes, error) {
	p, err := l.SignProfile(sign)
	if err != nil {
		return entity.MoonNotes{}, err
	}
	return entity.MoonNotes{
		EmotionalNature: fmt.Sprintf("Your Moon in %s shapes your emotional landscape in distinctive ways.", sign),
		Needs:           fmt.Sprintf("With Moon in %s, you need emotional experiences aligned with %s energy.", sign, strings.ToLower(p.Element)),
		NurturingStyle:  fmt.Sprintf("You nurture others through the lens of %s's qualities.", sign),
	}, nil
}

// HouseTheme は指定ハウス（1..12）のテーマを返します。
func (l *Library) HouseTheme(house int) (entity.HouseTheme, error) {
	l.once.Do(l.init)
	if l.err != nil {
		return entity.HouseTheme{}, l.err
	}
	t, ok := l.houses[strconv.Itoa(house)]
	if !ok {
		return entity.HouseTheme{}, fmt.Errorf("%w: %d", usecase.ErrUnknownHouse, house)
	}
	return t, nil
}
