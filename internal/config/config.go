// Package config provides YAML-based variant tuning, level scaling and
// process settings for the arcade.
package config

// Common holds the settings every variant carries.
type Common struct {
	MaxLevel int           `yaml:"max_level"`
	Stake    int           `yaml:"stake"` // Entry cost in tokens; 0 means free
	Rewards  RewardConfig  `yaml:"rewards"`
	Scaling  ScalingConfig `yaml:"scaling"`
}

// RewardConfig is the base token payout of a variant.
type RewardConfig struct {
	Win           int `yaml:"win"`
	Lose          int `yaml:"lose"`
	PerLevel      int `yaml:"per_level"`
	ScorePerToken int `yaml:"score_per_token"`
}

// ScalingConfig defines how parameters change between level 1 and the last level.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Fraction added to speeds at the last level
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction cut from intervals at the last level
	CountGrowth       int     `yaml:"count_growth"`       // Extra entities at the last level
}

// BreakoutConfig contains all configuration for Breakout.
type BreakoutConfig struct {
	Common  `yaml:",inline"`
	Physics BreakoutPhysics `yaml:"physics"`
	Paddle  BreakoutPaddle  `yaml:"paddle"`
	Bricks  BreakoutBricks  `yaml:"bricks"`
	Lives   int             `yaml:"lives"`
}

// BreakoutPhysics defines ball and paddle motion in units per second.
type BreakoutPhysics struct {
	BallSpeed   float64 `yaml:"ball_speed"`
	PaddleSpeed float64 `yaml:"paddle_speed"`
	MaxSpin     float64 `yaml:"max_spin"`
	BallRadius  float64 `yaml:"ball_radius"`
}

// BreakoutPaddle defines the player paddle.
type BreakoutPaddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Y      float64 `yaml:"y"`
}

// BreakoutBricks defines the brick grid.
type BreakoutBricks struct {
	Rows   int     `yaml:"rows"` // Rows at level 1; each level adds one
	Cols   int     `yaml:"cols"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Top    float64 `yaml:"top"`
	Gap    float64 `yaml:"gap"`
	Points int     `yaml:"points"`
}

// RunnerConfig contains all configuration for the endless runner.
type RunnerConfig struct {
	Common    `yaml:",inline"`
	Physics   RunnerPhysics   `yaml:"physics"`
	Obstacles RunnerObstacles `yaml:"obstacles"`
	Player    RunnerPlayer    `yaml:"player"`
	Goal      float64         `yaml:"goal"` // Distance to win at level 1
	Lives     int             `yaml:"lives"`
}

// RunnerPhysics defines jump and scroll parameters.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	MaxFall      float64 `yaml:"max_fall"`
	Speed        float64 `yaml:"speed"`
	Ground       float64 `yaml:"ground"`
}

// RunnerObstacles defines obstacle sizes and spawn cadence.
type RunnerObstacles struct {
	MinWidth     float64 `yaml:"min_width"`
	MaxWidth     float64 `yaml:"max_width"`
	MinHeight    float64 `yaml:"min_height"`
	MaxHeight    float64 `yaml:"max_height"`
	SpawnEveryMs int     `yaml:"spawn_every_ms"`
}

// RunnerPlayer defines the runner's body.
type RunnerPlayer struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyConfig contains all configuration for Flappy.
type FlappyConfig struct {
	Common  `yaml:",inline"`
	Physics FlappyPhysics `yaml:"physics"`
	Pipes   FlappyPipes   `yaml:"pipes"`
	Player  FlappyPlayer  `yaml:"player"`
	Goal    float64       `yaml:"goal"`
	Lives   int           `yaml:"lives"`
}

// FlappyPhysics defines gravity and scroll parameters.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	FlapVelocity float64 `yaml:"flap_velocity"`
	MaxFall      float64 `yaml:"max_fall"`
	Speed        float64 `yaml:"speed"`
}

// FlappyPipes defines pipe pairs.
type FlappyPipes struct {
	Width        float64 `yaml:"width"`
	MinGap       float64 `yaml:"min_gap"`
	MaxGap       float64 `yaml:"max_gap"`
	Margin       float64 `yaml:"margin"`
	SpawnEveryMs int     `yaml:"spawn_every_ms"`
	GatePoints   int     `yaml:"gate_points"`
}

// FlappyPlayer defines the bird.
type FlappyPlayer struct {
	X    float64 `yaml:"x"`
	Size float64 `yaml:"size"`
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	Common   `yaml:",inline"`
	Physics  PongPhysics  `yaml:"physics"`
	Paddles  PongPaddles  `yaml:"paddles"`
	Gameplay PongGameplay `yaml:"gameplay"`
	CPU      PongCPU      `yaml:"cpu"`
}

// PongPhysics defines ball and paddle speeds.
type PongPhysics struct {
	BallSpeed   float64 `yaml:"ball_speed"`
	PaddleSpeed float64 `yaml:"paddle_speed"`
	MaxSpin     float64 `yaml:"max_spin"`
	BallRadius  float64 `yaml:"ball_radius"`
}

// PongPaddles defines paddle dimensions.
type PongPaddles struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset float64 `yaml:"offset"` // Distance from the side wall
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore     int `yaml:"win_score"`
	ServeDelayMs int `yaml:"serve_delay_ms"`
}

// PongCPU defines the opponent.
type PongCPU struct {
	Speed  float64 `yaml:"speed"`  // Tracking speed in units per second at level 1
	Jitter float64 `yaml:"jitter"` // Aim error amplitude in units at level 1
}

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	Common      `yaml:",inline"`
	Cells       int `yaml:"cells"` // Grid cells per side
	StepEveryMs int `yaml:"step_every_ms"`
	FoodPoints  int `yaml:"food_points"`
	Target      int `yaml:"target"` // Score to clear level 1
	StartLength int `yaml:"start_length"`
}

// MemoryConfig contains all configuration for the memory match game.
type MemoryConfig struct {
	Common      `yaml:",inline"`
	Pairs       int `yaml:"pairs"` // Pairs at level 1
	Moves       int `yaml:"moves"` // Move budget at level 1
	FlipDelayMs int `yaml:"flip_delay_ms"`
	PairPoints  int `yaml:"pair_points"`
}

// MergeConfig contains all configuration for the 2048-style merge game.
type MergeConfig struct {
	Common `yaml:",inline"`
	Size   int `yaml:"size"`   // Board side length
	Target int `yaml:"target"` // Tile to reach at level 1; doubles each level
}
