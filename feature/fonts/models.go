package fonts

// PayloadVersion is the font-files payload version the Figma client expects.
const PayloadVersion = 23

// FontFilesResponse is the body of GET /figma/font-files.
type FontFilesResponse struct {
	Version   int                    `json:"version"`
	FontFiles map[string][]FontEntry `json:"fontFiles"`
}

// FontEntry describes one face of an installed font file.
type FontEntry struct {
	Postscript    string `json:"postscript"`
	Family        string `json:"family"`
	ID            string `json:"id"`
	Style         string `json:"style"`
	Weight        int    `json:"weight"`
	Stretch       int    `json:"stretch"`
	Italic        bool   `json:"italic"`
	ModifiedAt    int64  `json:"modified_at"`
	UserInstalled bool   `json:"user_installed"`
}
