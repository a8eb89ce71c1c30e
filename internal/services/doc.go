// Package services talks to the admin panel backend that owns each profile's template text.
//
// # Text File Stores
//
// [TextFileStore] is the contract shared by every place template text can live:
//   - [PanelClient] : the remote panel backend over HTTP
//   - repositories.TextStoreAdapter : the local SQLite database
//
// The CLI's pull/push commands copy text between the two; the HTTP server serves the local store with the panel's routes.
//
// # Panel API
//
// The panel exposes two JSON endpoints for text files:
//
//	GET  /get_text_file/{profile}/{type}  -> {"content": "..."}
//	POST /save_text_file                  <- {"profile_name": "...", "file_type": "...", "content": "..."}
//
// [PanelClient.Get] and [PanelClient.Post] return raw [APIResponse] values; the typed helpers map non-2xx statuses to [shared.ErrAPIRequest].
package services
