package model

import "time"

// Targets is the collection of active and dropped scrape targets as
// returned by the targets endpoint.
type Targets struct {
	Active  []ActiveTarget  `json:"activeTargets"`
	Dropped []DroppedTarget `json:"droppedTargets"`
}

// ActiveTarget is a target that is currently being scraped.
type ActiveTarget struct {
	DiscoveredLabels   Metric       `json:"discoveredLabels"`
	Labels             Metric       `json:"labels"`
	ScrapePool         string       `json:"scrapePool"`
	ScrapeURL          string       `json:"scrapeUrl"`
	GlobalURL          string       `json:"globalUrl"`
	LastError          string       `json:"lastError"`
	LastScrape         time.Time    `json:"lastScrape"`
	LastScrapeDuration float64      `json:"lastScrapeDuration"`
	Health             TargetHealth `json:"health"`
	ScrapeInterval     Duration     `json:"scrapeInterval"`
	ScrapeTimeout      Duration     `json:"scrapeTimeout"`
}

// DroppedTarget is a target that relabelling dropped from scraping.
// Only the labels as discovered before relabelling remain.
type DroppedTarget struct {
	DiscoveredLabels Metric `json:"discoveredLabels"`
}
