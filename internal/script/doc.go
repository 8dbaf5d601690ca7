// Package script runs Lua scripts against an editor.
//
// A script sees a small sandboxed Lua runtime (base, table, string and math
// libraries only) plus editing functions:
//
//	local n = nucl(0, 4, true)
//	cut(n)
//	xover(0, 1)
//	for _, id in ipairs(strands()) do
//	  print(id, length(id))
//	end
//	apply{op = "change_color", color = "#ff0000", strands = {2}}
//
// The whole script is one undo step. If it raises an error, or runs past
// its timeout, the design is left as it was before the script started.
package script
