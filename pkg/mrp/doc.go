// Package mrp compiles and executes match-and-replace patterns: a tiny
// pattern language for renaming strings (in practice, file names) with
// typed capture groups.
//
// A pattern is a match part, optionally followed by "->" and a replacement
// part:
//
//	pattern       := match_part ( "->" replace_part )?
//	match_part    := (literal | capture)*
//	capture       := "(" (ident ":")? type ")"
//	type          := "int" | "dig"
//	replace_part  := (literal | "(" ident ")" | "(" index ")")*
//
// "dig" captures exactly one ASCII digit, "int" a maximal run of one or
// more. Captures without an identifier are anonymous and referenced in the
// replacement by their 1-based position:
//
//	r, err := mrp.Compile("img(n:int).jpeg->photo-(n).jpg")
//	if err != nil {
//	    // *mrp.ParseError with positioned diagnostics
//	}
//	out, ok := r.Apply("img042.jpeg") // "photo-042.jpg", true
//
// A compiled expression is immutable and safe to share across goroutines;
// every Apply call keeps its match state and captures local. Matching is a
// single left-to-right sweep with no backtracking: an int capture always
// consumes the longest digit run available and never gives digits back to
// satisfy a later element. Patterns that would need that fail to match.
package mrp
