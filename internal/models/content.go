package models

import (
	"strings"
	"time"
)

// NewsType classifica o tipo editorial de uma notícia
type NewsType string

const (
	NewsTypeBreaking NewsType = "breaking"
	NewsTypeFeatured NewsType = "featured"
	NewsTypeRegular  NewsType = "regular"
)

// ContentItem representa uma notícia considerada para um slot de publicação.
// O motor de recomendação apenas lê snapshots destes itens.
type ContentItem struct {
	ID          string    `json:"id" binding:"required" example:"art_1029"`
	Title       string    `json:"title" example:"عاجل: هطول أمطار غزيرة على الرياض"`
	Excerpt     string    `json:"excerpt,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	CategoryID  string    `json:"category_id,omitempty" example:"local"`
	NewsType    NewsType  `json:"news_type,omitempty" example:"breaking"`
	PublishedAt time.Time `json:"published_at"`
	Views       int       `json:"views,omitempty"`
	Comments    int       `json:"comments,omitempty"`
}

// HasImage indica se o item possui imagem
func (c ContentItem) HasImage() bool {
	return strings.TrimSpace(c.ImageURL) != ""
}

// HasVideo indica se o item possui vídeo
func (c ContentItem) HasVideo() bool {
	return strings.TrimSpace(c.VideoURL) != ""
}

// IsBreaking indica se o item é uma notícia urgente
func (c ContentItem) IsBreaking() bool {
	return c.NewsType == NewsTypeBreaking
}

// Dataset é um conjunto nomeado de itens usado no playground
type Dataset struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Items       []ContentItem `json:"items"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// DatasetSummary é a listagem resumida de um dataset
type DatasetSummary struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ItemCount   int       `json:"item_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}
