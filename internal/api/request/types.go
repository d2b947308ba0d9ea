package request

// CreateGameRequest is the request body for creating a game. Each seat is
// "human" or a strategy name, in color order.
type CreateGameRequest struct {
	Seats []string `json:"seats"`
}

// PlayMoveRequest is the request body for playing a move
type PlayMoveRequest struct {
	Color string `json:"color"`
	Move  string `json:"move"`
}
