package database

import (
	"log/slog"

	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/news"
	"github.com/KatsuoTomino/KoutaArtsite/internal/domain/works"

	"gorm.io/gorm"
)

func strptr(s string) *string { return &s }

// SeedContent inserts the sample portfolio content when the works table is
// empty. It is a no-op on a populated database.
func SeedContent(db *gorm.DB) error {
	var count int64
	if err := db.Model(&works.Work{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sampleWorks := []works.Work{
		{
			Title:    "Artwork One",
			Year:     strptr("2024"),
			ImageURL: "/image/art01.jpg",
			Details:  []string{"Creative concept development", "Visual composition", "Color harmony", "Artistic expression"},
		},
		{
			Title:    "Artwork Two",
			Year:     strptr("2024"),
			ImageURL: "/image/art02.jpg",
			Details:  []string{"Conceptual design", "Visual narrative", "Style exploration", "Creative execution"},
		},
		{
			Title:    "Artwork Three",
			Year:     strptr("2024"),
			ImageURL: "/image/art03.jpg",
			Details:  []string{"Technique innovation", "Style fusion", "Visual impact", "Artistic integrity"},
		},
		{
			Title:    "Artwork Four",
			Year:     strptr("2023"),
			ImageURL: "/image/art04.jpg",
			Details:  []string{"Emotional expression", "Dynamic composition", "Color dynamics", "Visual rhythm"},
		},
		{
			Title:    "Artwork Five",
			Year:     strptr("2023"),
			ImageURL: "/image/art05.jpg",
			Details:  []string{"Form exploration", "Compositional balance", "Visual harmony", "Artistic mastery"},
		},
	}

	sampleNews := []news.Item{
		{
			Title:       "新作アートワークを公開しました",
			Date:        "2024.12.15",
			Category:    strptr("作品"),
			Description: strptr("最新作をポートフォリオに追加しました。"),
			ImageURL:    strptr("/image/art05.jpg"),
			Content: []string{
				"この度、新作アートワークを公開いたしました。",
				"今回の作品は、光と影のコントラストをテーマにした作品となっています。",
				"ぜひWorksセクションからご覧ください。",
			},
		},
		{
			Title:       "ウェブサイトをリニューアルしました",
			Date:        "2024.12.01",
			Category:    strptr("お知らせ"),
			Description: strptr("より見やすく、使いやすいデザインに刷新しました。"),
			ImageURL:    strptr("/image/art01.jpg"),
			Content: []string{
				"ポートフォリオサイトを全面的にリニューアルいたしました。",
				"モバイルデバイスでも快適にご覧いただけるよう、レスポンシブデザインを採用しました。",
			},
		},
		{
			Title:       "個展開催のお知らせ",
			Date:        "2024.11.20",
			Category:    strptr("イベント"),
			Description: strptr("2025年1月に個展を開催予定です。詳細は後日発表いたします。"),
			ImageURL:    strptr("/image/art03.jpg"),
			Content: []string{
				"2025年1月、個展を開催いたします。",
				"入場無料となっておりますので、ぜひお越しください。",
			},
		},
	}

	if err := db.Create(&sampleWorks).Error; err != nil {
		return err
	}
	if err := db.Create(&sampleNews).Error; err != nil {
		return err
	}

	slog.Info("seeded sample content", "works", len(sampleWorks), "news", len(sampleNews))
	return nil
}
