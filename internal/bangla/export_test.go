package bangla

var YearLength = yearLength
