package bot

import "github.com/nhamil/tilewe-go/internal/model"

// wallCrawlWeights rises in rings from the centre to the edges
var wallCrawlWeights = [model.NumTiles]float64{
	100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
	100, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 100,
	100, 90, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 90, 100,
	100, 90, 75, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 30, 30, 30, 30, 30, 30, 30, 30, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 30, 25, 25, 25, 25, 25, 25, 30, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 30, 25, 10, 10, 10, 10, 25, 30, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 30, 25, 10, 0, 0, 10, 25, 30, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 30, 25, 10, 0, 0, 10, 25, 30, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 30, 25, 10, 10, 10, 10, 25, 30, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 30, 25, 25, 25, 25, 25, 25, 30, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 30, 30, 30, 30, 30, 30, 30, 30, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 60, 75, 90, 100,
	100, 90, 75, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 75, 90, 100,
	100, 90, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 75, 90, 100,
	100, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 100,
	100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
}

// turtleWeights doubles towards each corner and is lowest along the centre lines
var turtleWeights = [model.NumTiles]float64{
	512, 256, 128, 64, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 64, 128, 256, 512,
	256, 256, 128, 64, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 64, 128, 256, 256,
	128, 128, 128, 64, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 64, 128, 128, 128,
	64, 64, 64, 64, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 64, 64, 64, 64,
	32, 32, 32, 32, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 32, 32, 32, 32,
	16, 16, 16, 16, 16, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 16, 16, 16, 16, 16,
	8, 8, 8, 8, 8, 8, 8, 4, 2, 1, 1, 2, 4, 8, 8, 8, 8, 8, 8, 8,
	4, 4, 4, 4, 4, 4, 4, 4, 2, 1, 1, 2, 4, 4, 4, 4, 4, 4, 4, 4,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	4, 4, 4, 4, 4, 4, 4, 4, 2, 1, 1, 2, 4, 4, 4, 4, 4, 4, 4, 4,
	8, 8, 8, 8, 8, 8, 8, 4, 2, 1, 1, 2, 4, 8, 8, 8, 8, 8, 8, 8,
	16, 16, 16, 16, 16, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 16, 16, 16, 16, 16,
	32, 32, 32, 32, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 32, 32, 32, 32,
	64, 64, 64, 64, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 64, 64, 64, 64,
	128, 128, 128, 64, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 64, 128, 128, 128,
	256, 256, 128, 64, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 64, 128, 256, 256,
	512, 256, 128, 64, 32, 16, 8, 4, 2, 1, 1, 2, 4, 8, 16, 32, 64, 128, 256, 512,
}
