package catalog

// Show represents a scheduled performance at the opera house.  The
// catalog is authored as static JSON bundled with the binary; shows
// are read-only and looked up by their string identifier.
//
// Fields:
//  ID          – unique identifier used in URLs and chart filenames.
//  Title       – performance title.
//  Composer    – composer credited on the programme.
//  Date        – performance date ("YYYY-MM-DD").
//  Time        – curtain time ("HH:MM", local venue time).
//  Duration    – human-readable running time including intermissions.
//  Language    – language the piece is performed in.
//  Description – descriptive blurb for the details page.
//  Image       – URL of the poster image.
type Show struct {
	ID          string `json:"id"`          // shows[].id
	Title       string `json:"title"`       // shows[].title
	Composer    string `json:"composer"`    // shows[].composer
	Date        string `json:"date"`        // shows[].date
	Time        string `json:"time"`        // shows[].time
	Duration    string `json:"duration"`    // shows[].duration
	Language    string `json:"language"`    // shows[].language
	Description string `json:"description"` // shows[].description
	Image       string `json:"image"`       // shows[].image
}
