package eodhd

import "time"

// EODData represents a single day's end-of-day price data.
type EODData struct {
	Date          time.Time `json:"-"`
	DateStr       string    `json:"date"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	AdjustedClose float64   `json:"adjusted_close"`
	Volume        int64     `json:"volume"`
}

// EODResponse is a slice of EODData.
type EODResponse []EODData

// NewsItem represents a single news article.
type NewsItem struct {
	Date    time.Time `json:"-"`
	DateStr string    `json:"date"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Link    string    `json:"link"`
	Symbols []string  `json:"symbols"`
	Tags    []string  `json:"tags"`
}

// NewsResponse is a slice of NewsItem.
type NewsResponse []NewsItem
