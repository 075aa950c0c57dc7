package shell

// CommandHelpText is printed by the "help" command.
const CommandHelpText = `Commands:

list|ls EXPR        print matching entries, one "drive:path" per line
longlist|ll EXPR     like list, with size/date/target/kind appended
tree|tr EXPR         print matching entries as an indented tree
ntree|ntr EXPR       like tree, with numbered indentation
maxdepth|maxd N|u    set the maximum traversal depth (u = unlimited)
maxbreadth|maxb N|u  set the maximum directory breadth
maxent|maxe N|u      set the maximum number of matching entries
maxdepth?            show the current maxdepth
maxbreadth?          show the current maxbreadth
maxent?              show the current maxent
counts               print entry/byte counts after each query
nocounts             stop printing entry/byte counts
drives               list the loaded snapshots and their indices
help                 this text
help-expr            filter expression grammar
quit                 exit

An empty EXPR means %t (match everything).
`

// ExprHelpText is printed by the "help-expr" command.
const ExprHelpText = `Filter expression grammar:

%t                   always true
%f                   always false
%drive N             entry belongs to loaded snapshot N
%name 'REGEX'         base name matches REGEX
'REGEX'               full path matches REGEX (quotes optional for a
                      string with no spaces or operators in it)
%smaller N            size <= N bytes (absent size: false)
%larger N              size >= N bytes (absent size: false)
%before YYYY-MM-DD     timestamp <= that date, midnight UTC
%after YYYY-MM-DD      timestamp >= that date, midnight UTC
E & E                and
E | E                or, lowest precedence
E \ E                and-not
( E )                grouping

Sizes may carry a k/M/G suffix (1024-based).
`
