package protocol

import "encoding/json"

// RoomResponse wraps a room snapshot (any type with its own MarshalJSON,
// typically *room.Room) in the {"response":"room", "room": ...} envelope.
// It takes an interface rather than a concrete room type to avoid an
// import cycle: internal/room depends on internal/protocol for request
// parsing, not the other way around.
func RoomResponse(room interface{}) ([]byte, error) {
	return json.Marshal(struct {
		Response string      `json:"response"`
		Room     interface{} `json:"room"`
	}{
		Response: "room",
		Room:     room,
	})
}

// TilesResponse wraps a board's tile-color grid in the private reveal
// message sent only to each team's codemaster on game start.
func TilesResponse(tiles interface{}) ([]byte, error) {
	return json.Marshal(struct {
		Response string      `json:"response"`
		Tiles    interface{} `json:"tiles"`
	}{
		Response: "tiles",
		Tiles:    tiles,
	})
}

// ErrorResponse builds the {"response":"error","error":msg} envelope sent
// to the offending token only; it is never broadcast.
func ErrorResponse(msg string) []byte {
	data, _ := json.Marshal(struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}{
		Response: "error",
		Error:    msg,
	})
	return data
}
