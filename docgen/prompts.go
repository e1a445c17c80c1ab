package docgen

import (
	"fmt"
	"strings"
	"text/template"
)

// promptSet holds the three templates a generator draws from. Russian is the
// default documentation language, matching the config default.
type promptSet struct {
	endpoint *template.Template
	tag      *template.Template
	overview *template.Template
}

type endpointPromptData struct {
	Path             string
	Method           string
	Tags             string
	OperationDetails string
	Components       string
	Security         string
}

type tagPromptData struct {
	Tag           string
	Description   string
	EndpointsList string
}

type overviewPromptData struct {
	Title          string
	Version        string
	Description    string
	TotalEndpoints int
	TotalTags      int
	Components     string
}

const endpointTemplateRU = `Создай детальную документацию на русском языке для REST API эндпоинта:

Путь: {{.Path}}
Метод: {{.Method}}
Тег: {{.Tags}}

Информация об операции:
{{.OperationDetails}}

Доступные компоненты (схемы):
{{.Components}}

Авторизация: {{.Security}}

Документация должна включать:
1. Краткое описание эндпоинта
2. Параметры запроса с типами и описаниями
3. Тело запроса (если требуется) с примером
4. Все возможные ответы с кодами статуса
5. 2-3 примера curl запроса
6. Коды ошибок и их смысл

Формат: Markdown с правильной иерархией заголовков`

const tagTemplateRU = `Создай подробную документацию для группы API эндпоинтов на русском:

Название: {{.Tag}}
Описание: {{.Description}}

Список эндпоинтов в этой группе:
{{.EndpointsList}}

Документация должна включать:
1. Общее описание функциональности группы
2. Требования к авторизации (если есть)
3. Таблица со всеми эндпоинтами (метод, путь, описание)
4. Типичные сценарии использования
5. Ошибки и их обработка

Формат: Markdown`

const overviewTemplateRU = `Создай полный обзор API документации на русском:

Название API: {{.Title}}
Версия: {{.Version}}
Описание: {{.Description}}

Статистика:
- Всего эндпоинтов: {{.TotalEndpoints}}
- Групп (тегов): {{.TotalTags}}
- Основные компоненты: {{.Components}}

Документация должна включать:
1. Краткое описание API
2. Информацию об авторизации
3. Список всех доступных групп эндпоинтов
4. Коды ошибок
5. Рекомендации по использованию

Формат: Markdown`

const endpointTemplateEN = `Create detailed documentation for a REST API endpoint:

Path: {{.Path}}
Method: {{.Method}}
Tag: {{.Tags}}

Operation Details:
{{.OperationDetails}}

Available components (schemas):
{{.Components}}

Security: {{.Security}}

Documentation MUST include:
1. Brief endpoint description
2. Request parameters with types
3. Request body (if required) with example
4. All possible responses with status codes
5. 2-3 curl examples
6. Error codes and meanings

Format: Markdown with a proper heading hierarchy`

const tagTemplateEN = `Create comprehensive documentation for a group of API endpoints:

Name: {{.Tag}}
Description: {{.Description}}

Endpoints in this group:
{{.EndpointsList}}

Documentation must include:
1. Group functionality overview
2. Authorization requirements
3. Endpoints table (method, path, description)
4. Usage scenarios
5. Error handling

Format: Markdown`

const overviewTemplateEN = `Create a complete API documentation overview:

API Name: {{.Title}}
Version: {{.Version}}
Description: {{.Description}}

Statistics:
- Total endpoints: {{.TotalEndpoints}}
- Groups (tags): {{.TotalTags}}
- Key components: {{.Components}}

Documentation must include:
1. Brief API description
2. Authorization information
3. List of all endpoint groups
4. Error codes
5. Usage recommendations

Format: Markdown`

func promptsFor(language string) (*promptSet, error) {
	var endpoint, tag, overview string
	switch language {
	case "", "ru":
		endpoint, tag, overview = endpointTemplateRU, tagTemplateRU, overviewTemplateRU
	case "en":
		endpoint, tag, overview = endpointTemplateEN, tagTemplateEN, overviewTemplateEN
	default:
		return nil, fmt.Errorf("unsupported documentation language %q", language)
	}

	ps := &promptSet{}
	var err error
	if ps.endpoint, err = template.New("endpoint").Parse(endpoint); err != nil {
		return nil, err
	}
	if ps.tag, err = template.New("tag").Parse(tag); err != nil {
		return nil, err
	}
	if ps.overview, err = template.New("overview").Parse(overview); err != nil {
		return nil, err
	}
	return ps, nil
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", t.Name(), err)
	}
	return sb.String(), nil
}
