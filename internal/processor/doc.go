// Package processor is a clientlib script processor built on the jsfront
// parser and printer.
//
// Назначение:
//   - принимает скрипт клиентской библиотеки и опции в стиле min:gcc;
//   - разбирает JS на языке --language_in и печатает его компактно
//     (или PRETTY_PRINT);
//   - предупреждает о конструкциях новее --language_out.
//
// Не делает:
//   - понижение синтаксиса и оптимизации уровня SIMPLE/ADVANCED;
//   - обработку CSS (Handles возвращает false).
//
// Зависимости: driver, printer, diag; msgpack для дискового кэша.
package processor
