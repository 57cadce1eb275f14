// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Placeholders written into missing optional fields during cleaning.
const (
	NoAbstract     = "NO ABSTRACT PROVIDED"
	UnknownJournal = "UNKNOWN JOURNAL"
)

// Column names of the input metadata file that the explorer reads.
const (
	ColTitle       = "title"
	ColAbstract    = "abstract"
	ColJournal     = "journal"
	ColPublishTime = "publish_time"
	ColPublishDate = "publish_date"
	ColYear        = "year"
)

// Record is one row of the input metadata before cleaning. A field that was
// absent from the file, empty, or a NaN marker has its Has flag unset.
type Record struct {
	Title       string `json:"title" yaml:"title"`
	Abstract    string `json:"abstract" yaml:"abstract"`
	Journal     string `json:"journal" yaml:"journal"`
	PublishTime string `json:"publish_time" yaml:"publish_time"`

	HasTitle       bool `json:"-" yaml:"-"`
	HasAbstract    bool `json:"-" yaml:"-"`
	HasJournal     bool `json:"-" yaml:"-"`
	HasPublishTime bool `json:"-" yaml:"-"`
}

// CleanedRecord is a Record that survived cleaning. Title, Abstract, Journal
// and PublishDate are always set and Year equals PublishDate.Year().
type CleanedRecord struct {
	// Title is the paper title as it appeared in the input.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract, or NoAbstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Journal is the publishing journal, or UnknownJournal.
	Journal string `json:"journal" yaml:"journal"`

	// PublishTime is the raw publish_time value the date was parsed from.
	PublishTime string `json:"publish_time" yaml:"publish_time"`

	// PublishDate is the parsed publication date (UTC, midnight).
	PublishDate time.Time `json:"publish_date" yaml:"publish_date"`

	// Year is the calendar year of PublishDate.
	Year int `json:"year" yaml:"year"`
}

// DateLayout formats PublishDate in exports and tables.
const DateLayout = "2006-01-02"

// YearRange is an inclusive range of publication years.
type YearRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Empty reports whether no year can fall inside the range.
func (r YearRange) Empty() bool {
	return r.Min > r.Max
}

// Contains reports whether year lies within the range, bounds included.
func (r YearRange) Contains(year int) bool {
	return r.Min <= year && year <= r.Max
}

// Count is one entry of an aggregate: a key (year, journal or word) and the
// number of records or tokens that carried it.
type Count struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// NewRecord builds a Record from raw field values, treating an empty value
// as missing.
func NewRecord(title, abstract, journal, publishTime string) Record {
	return Record{
		Title:          title,
		Abstract:       abstract,
		Journal:        journal,
		PublishTime:    publishTime,
		HasTitle:       title != "",
		HasAbstract:    abstract != "",
		HasJournal:     journal != "",
		HasPublishTime: publishTime != "",
	}
}
