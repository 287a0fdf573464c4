// Package fuzztests houses Go fuzz harnesses for the obc front end
// (source -> lexer -> parser). They guard against panics, hangs and
// malformed spans on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через лексер и парсер и проверять,
// что разбор завершается, а у успешно разобранного модуля корректные span'ы.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
