// meta/meta.go
package meta

// ROWS is the number of rows on the reference board.
const ROWS = 6

// COLUMNS is the number of columns on the reference board.
const COLUMNS = 7

// DEPTH is the default search depth in plies, counting the root level.
const DEPTH = 4

// MIN_DEPTH is the smallest depth that still produces a move.
const MIN_DEPTH = 2

// POS_INFINITY and NEG_INFINITY bound every evaluation.
const POS_INFINITY = 999999999
const NEG_INFINITY = -POS_INFINITY

// CONNECT is the window length used for the published game score.
const CONNECT = 4
